// Package httpserver exposes the account API over HTTP using gin.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/acquisitions/internal/logging"
	"github.com/dmitrijs2005/acquisitions/internal/server/auth"
	"github.com/dmitrijs2005/acquisitions/internal/server/cookies"
	"github.com/dmitrijs2005/acquisitions/internal/server/models"
	"github.com/dmitrijs2005/acquisitions/internal/server/validation"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// AuthService is what the auth handlers need from the account layer.
type AuthService interface {
	CreateUser(ctx context.Context, in models.NewUser) (*models.User, error)
	AuthenticateUser(ctx context.Context, email, password string) (*models.User, error)
}

// UserService is what the user handlers need from the account layer.
type UserService interface {
	GetAll(ctx context.Context) ([]*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, id int64, update models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id int64) (*models.User, error)
}

type HTTPServer struct {
	address     string
	logger      logging.Logger
	authService AuthService
	userService UserService
	tokens      *auth.TokenManager
	cookies     *cookies.Jar
	validator   *validation.Validator
	started     time.Time
	engine      *gin.Engine
}

func NewHTTPServer(a string, l logging.Logger, as AuthService, us UserService, tm *auth.TokenManager, jar *cookies.Jar) *HTTPServer {
	s := &HTTPServer{
		address:     a,
		logger:      l.With("module", "http_server"),
		authService: as,
		userService: us,
		tokens:      tm,
		cookies:     jar,
		validator:   validation.New(),
		started:     time.Now(),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the fully wired router.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

func (s *HTTPServer) routes() *gin.Engine {
	r := gin.New()
	r.Use(s.requestID(), s.requestLogger(), s.recovery(), s.errorHandler())

	r.GET("/", s.root)
	r.GET("/health", s.health)
	r.GET("/api", s.apiStatus)

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/signup", s.signUp)
		authRoutes.POST("/signin", s.signIn)
		authRoutes.POST("/signout", s.signOut)
	}

	users := r.Group("/users", s.authenticateToken())
	{
		users.GET("", s.requireAdmin(), s.fetchAllUsers)
		users.GET("/:id", s.requireOwnershipOrAdmin(), s.fetchUserByID)
		users.PUT("/:id", s.updateUserByID)
		users.DELETE("/:id", s.deleteUserByID)
	}

	r.NoRoute(s.routeNotFound)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 15 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
