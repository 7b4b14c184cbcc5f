package handlers

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidators installs the custom binding tags used by the request DTOs:
// currency_code (three ASCII letters, any case) and nonnegative_decimal.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	// Validate decimals through their string form; struct-typed fields are otherwise only traversed.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	if err := v.RegisterValidation("currency_code", validateCurrencyCode); err != nil {
		return err
	}
	return v.RegisterValidation("nonnegative_decimal", validateNonNegativeDecimal)
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	code := strings.TrimSpace(fl.Field().String())
	if len(code) != 3 {
		return false
	}
	for _, r := range strings.ToUpper(code) {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func validateNonNegativeDecimal(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return !d.IsNegative()
}
