// Package httpapi exposes the wellness diary over REST: a gin router with
// cookie-based session auth, a uniform JSON envelope and a central error
// translator.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/wellnessdiary/api/internal/logging"
	"github.com/wellnessdiary/api/internal/server/config"
	"github.com/wellnessdiary/api/internal/server/models"
	"github.com/wellnessdiary/api/internal/server/services"
)

// UserService is the account surface the handlers need.
type UserService interface {
	Register(ctx context.Context, firstName, lastName, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID, firstName, lastName string) (*models.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, rawToken, newPassword string) error
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

// EntryService is the diary surface the handlers need.
type EntryService interface {
	Create(ctx context.Context, userID string, entry *models.DiaryEntry) (*models.DiaryEntry, error)
	GetByID(ctx context.Context, id string) (*models.DiaryEntry, error)
	List(ctx context.Context, userID string, params url.Values) ([]*models.DiaryEntry, int64, error)
	Update(ctx context.Context, userID, id string, upd *services.EntryUpdate) (*models.DiaryEntry, error)
	Delete(ctx context.Context, userID, id string) error
}

type Server struct {
	address        string
	router         *gin.Engine
	logger         logging.Logger
	users          UserService
	entries        EntryService
	jwtSecret      []byte
	tokenValidity  time.Duration
	cookieSecure   bool
	frontendOrigin string
}

// NewServer wires the router. Auth endpoints that guess at credentials
// (login, forgot-password) sit behind a modest in-process rate limiter.
func NewServer(cfg *config.Config, l logging.Logger, us UserService, es EntryService) *Server {
	s := &Server{
		address:        cfg.EndpointAddr,
		logger:         l.With("module", "http_server"),
		users:          us,
		entries:        es,
		jwtSecret:      []byte(cfg.SecretKey),
		tokenValidity:  cfg.TokenValidityDuration,
		cookieSecure:   cfg.CookieSecure,
		frontendOrigin: cfg.FrontendOrigin,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())
	r.Use(s.cors())

	// 1 request/sec with small bursts is plenty for humans and annoying
	// for credential stuffing.
	loginLimit := s.rateLimit(rate.NewLimiter(rate.Limit(1), 5))
	forgotLimit := s.rateLimit(rate.NewLimiter(rate.Limit(1), 3))

	api := r.Group("/api/v1")

	api.GET("/ping", s.ping)

	user := api.Group("/user")
	user.POST("/register", s.register)
	user.POST("/login", loginLimit, s.login)
	user.POST("/logout", s.logout)
	user.GET("/me", s.requireAuth(), s.getProfile)
	user.PUT("/me", s.requireAuth(), s.updateProfile)
	user.POST("/forgot-password", forgotLimit, s.forgotPassword)
	user.PUT("/reset-password/:resetToken", s.resetPassword)
	user.PUT("/update-password", s.requireAuth(), s.updatePassword)

	diary := api.Group("/diary", s.requireAuth())
	diary.GET("/all", s.listEntries)
	diary.GET("/:id", s.getEntry)
	diary.POST("/new", s.createEntry)
	diary.PUT("/:id", s.updateEntry)
	diary.DELETE("/:id", s.deleteEntry)

	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) ping(c *gin.Context) {
	c.JSON(http.StatusOK, response{Success: true, Message: "pong"})
}
