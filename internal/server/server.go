package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"account-service/config"
	"account-service/internal/handler"
	"account-service/internal/middleware"
	"account-service/internal/redis"
	"account-service/internal/services"
	"account-service/internal/transport/httpdto"
	account_errors "account-service/pkg/errors"
	"account-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Users *handler.UserHandler
}

// HealthCheck reports whether a named dependency is reachable.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Dependencies are the collaborators routes need besides handlers.
// Limiter may be nil, which disables auth rate limiting. HealthChecks run
// in order and the first failure is reported.
type Dependencies struct {
	Tokens       *services.TokenIssuer
	Limiter      *redis.RateLimiter
	HealthChecks []HealthCheck
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(middleware.Recovery(l))

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.AppPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) SetupRoutes(handlers *Handlers, deps Dependencies) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	if deps.Limiter != nil {
		s.engine.Use(middleware.AuthRateLimitMiddleware(deps.Limiter, s.logger))
	}

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"message": "pong"}))
	})

	s.engine.GET("/health", s.health(deps.HealthChecks))

	users := s.engine.Group("/v1/users")
	{
		users.POST("/register", handlers.Users.Register)
		users.POST("/login", handlers.Users.Login)
		if s.config.UsersRequireAuth && deps.Tokens != nil {
			users.GET("", middleware.AuthMiddleware(deps.Tokens), handlers.Users.List)
		} else {
			users.GET("", handlers.Users.List)
		}
	}
}

func (s *Server) health(checks []HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, hc := range checks {
			if err := hc.Check(c.Request.Context()); err != nil {
				err = fmt.Errorf("%s: %w: %v", hc.Name, account_errors.ErrServiceUnavailable, err)
				if s.logger != nil {
					s.logger.WarnCtx(c.Request.Context(), "health check failed", zap.String("dependency", hc.Name), zap.Error(err))
				}
				c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse(hc.Name+" unavailable"))
				return
			}
		}
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "healthy"}))
	}
}

func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("Error in starting the server: %s", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	if s.logger != nil {
		s.logger.Infof("Server is running on :%s", s.config.AppPort)
	}

	<-quit

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
