package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/transaction_processor/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	apiPrefix       = "/api/"
	apiRequestEvent = "api_request"
)

// PosthogMiddleware reports every matched /api request as an api_request event keyed by the
// authenticated actor, or by client IP when authentication is disabled.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	if !posthogClient.IsInitialized() {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" || !strings.HasPrefix(route, apiPrefix) {
			return
		}

		distinctID, ok := GetActorIDFromContext(c)
		if !ok {
			distinctID = c.ClientIP()
		}

		status := c.Writer.Status()
		props := map[string]any{
			"method":       c.Request.Method,
			"route":        route,
			"status_code":  status,
			"status_class": strconv.Itoa(status/100) + "xx",
			"latency_ms":   time.Since(start).Milliseconds(),
		}
		if accountID := c.Param("accountID"); accountID != "" {
			props["account_id"] = accountID
		}
		if requestID := c.Writer.Header().Get(RequestIDHeader); requestID != "" {
			props["request_id"] = requestID
		}

		posthogClient.Enqueue(distinctID, apiRequestEvent, props)
	}
}
