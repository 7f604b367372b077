package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	fragmentKey     = "fragment"
)

// RequestID tags every request with an id, reusing one supplied by a proxy.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Fragment marks requests issued by htmx so handlers render partial views.
func Fragment() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(fragmentKey, strings.EqualFold(c.GetHeader("HX-Request"), "true"))
		c.Next()
	}
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// IsFragment reports whether the request only wants the changed sub-view.
func IsFragment(c *gin.Context) bool {
	return c.GetBool(fragmentKey)
}
