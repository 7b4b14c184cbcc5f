package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/transaction_processor/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate), apperrors.IsBusinessRule(err):
		return http.StatusConflict
	case errors.As(err, &appErr) && appErr.Code > 0:
		return appErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": ...}. Messages of server errors are replaced by fallback.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}
