package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/wellnessdiary/api/internal/server/auth"
	"github.com/wellnessdiary/api/internal/server/models"
)

// sessionCookie is the name of the cookie carrying the signed session token.
const sessionCookie = "token"

// userContextKey is where requireAuth stores the resolved account.
const userContextKey = "currentUser"

// requireAuth verifies the session cookie and resolves it to a full user
// record before the handler runs. Any failure ends the request with 401.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				response{Success: false, Message: "Please login to access this resource"})
			return
		}

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				response{Success: false, Message: "Not authorized to access this resource"})
			return
		}

		user, err := s.users.GetProfile(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				response{Success: false, Message: "Not authorized to access this resource"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// currentUser returns the account resolved by requireAuth.
func currentUser(c *gin.Context) *models.User {
	return c.MustGet(userContextKey).(*models.User)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client", c.ClientIP(),
		)
	}
}

// cors admits the configured frontend origin with credentials, so the
// session cookie survives cross-origin requests from the SPA.
func (s *Server) cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && origin == s.frontendOrigin {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (s *Server) rateLimit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				response{Success: false, Message: "Too many requests, please try again later"})
			return
		}
		c.Next()
	}
}
