package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authService "github.com/jwalitptl/clinic-portal/internal/service/auth"
	"github.com/jwalitptl/clinic-portal/pkg/auth"
)

// ContextAdminUsername is where the guard stashes the authenticated identity.
const ContextAdminUsername = "admin_username"

type AuthMiddleware struct {
	authService *authService.Service
}

func NewAuthMiddleware(authService *authService.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// RequireSession is the session guard for the page routes. A missing or
// invalid session cookie short-circuits the handler with a redirect to the
// login page; no side effects of the guarded operation run.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.CookieName)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		claims, err := m.authService.ValidateSession(token)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(ContextAdminUsername, claims.Username)
		c.Next()
	}
}
