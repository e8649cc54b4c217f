package middleware

import (
	"net/http"
	"strings"

	"fleetlog/internal/domain"
	"fleetlog/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	AuthCookie = "fleetlog_token"
	userKey    = "auth_user"
)

// RequireAuth rejects requests without a valid token. It is a no-op when
// secret is empty. Browser pages are redirected to /login; /api paths get
// a 401.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		raw, _ := c.Cookie(AuthCookie)
		if h := c.GetHeader("Authorization"); raw == "" && strings.HasPrefix(h, "Bearer ") {
			raw = strings.TrimPrefix(h, "Bearer ")
		}

		user, err := services.ParseToken([]byte(secret), raw)
		if err != nil {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":      "authentication required",
					"request_id": GetRequestID(c),
				})
				return
			}
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the signed-in user when auth is enabled.
func CurrentUser(c *gin.Context) (domain.RequestContext, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return domain.RequestContext{}, false
	}
	u, ok := v.(domain.RequestContext)
	return u, ok
}
