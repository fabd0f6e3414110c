package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// setSessionCookie stores the session token as an HttpOnly, SameSite=Strict
// cookie living as long as the token itself.
func (s *Server) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sessionCookie, token, int(s.tokenValidity.Seconds()), "/", "", s.cookieSecure, true)
}

// clearSessionCookie overwrites the cookie with an immediately expired empty
// value. The token itself stays valid until its natural expiry.
func (s *Server) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", s.cookieSecure, true)
}
