package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/legatepro/legatepro/internal/tenantctx"
)

const (
	sessionCookieName = "legatepro_session"
	contextUserKey    = "current_user"
)

// AuthRequired resolves the session cookie to a user and seeds the tenant
// into the request context for every downstream service call.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookieName)
		if err != nil || strings.TrimSpace(token) == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		user, err := s.authSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextUserKey, user)
		c.Request = c.Request.WithContext(tenantctx.WithOwnerID(c.Request.Context(), user.ID))
		c.Next()
	}
}

func (s *Server) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, maxAge, "/", "", s.cfg.AuthCookieSecure, true)
}

func (s *Server) clearSessionCookie(c *gin.Context) {
	s.setSessionCookie(c, "", -1)
}
