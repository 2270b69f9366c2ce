package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/twinlabs/persona-backend/internal/platform/logger"
)

type InternalAuthMiddleware struct {
	log   *logger.Logger
	token string
}

func NewInternalAuthMiddleware(log *logger.Logger, token string) *InternalAuthMiddleware {
	return &InternalAuthMiddleware{
		log:   log.With("middleware", "InternalAuthMiddleware"),
		token: token,
	}
}

// RequireToken gates /internal routes behind a shared secret header.
// An empty configured token leaves the routes open for local setups.
func (im *InternalAuthMiddleware) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if im.token == "" {
			c.Next()
			return
		}
		got := c.GetHeader("X-Internal-Token")
		if subtle.ConstantTimeCompare([]byte(got), []byte(im.token)) != 1 {
			im.log.Warn("Rejected internal request", "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "invalid internal token", "code": "unauthorized"},
			})
			return
		}
		c.Next()
	}
}
