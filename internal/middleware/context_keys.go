package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// actorIDKey holds the authenticated caller, taken from the token subject.
const actorIDKey = contextKey("actorID")

// GetActorIDFromContext returns the authenticated caller, if any.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(actorIDKey)); exists {
		actorID, ok := v.(string)
		return actorID, ok && actorID != ""
	}
	return GetActorIDFromCtx(c.Request.Context())
}

func GetActorIDFromCtx(ctx context.Context) (string, bool) {
	actorID, ok := ctx.Value(actorIDKey).(string)
	return actorID, ok && actorID != ""
}
