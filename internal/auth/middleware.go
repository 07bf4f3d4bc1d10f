package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/session"
)

// Context keys set by the middleware.
const (
	CtxUserID      = "user_id"
	CtxDisplayName = "display_name"
)

// Required validates the bearer token on every request and injects the
// authenticated user into the gin context.
func Required(sessions session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		sess, err := sessions.Get(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(CtxUserID, sess.UserID)
		c.Set(CtxDisplayName, sess.DisplayName)
		c.Next()
	}
}

// UserID returns the authenticated user id set by Required.
func UserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// DisplayName returns the authenticated user's display name.
func DisplayName(c *gin.Context) string {
	v, ok := c.Get(CtxDisplayName)
	if !ok {
		return ""
	}
	name, _ := v.(string)
	return name
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
