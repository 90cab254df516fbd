package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turtacn/ReactionMapper/pkg/types/common"
)

// HeaderRequestID carries the request identifier in both directions.
const HeaderRequestID = "X-Request-ID"

const ginKeyRequestID = "request_id"

// RequestID reuses the caller's X-Request-ID or generates one, echoes it in
// the response, and stores it in both the gin and the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ginKeyRequestID, id)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), common.ContextKeyRequestID, id))
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// GetRequestID returns the identifier stored by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(ginKeyRequestID)
}

// BodyLimit caps request bodies at limit bytes.  Non-positive limits
// disable the cap.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
