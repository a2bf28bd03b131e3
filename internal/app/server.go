// internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"jobportal-service/internal/config"
	"jobportal-service/internal/db"
	userHandler "jobportal-service/internal/handlers/user"
	"jobportal-service/internal/middleware"
	"jobportal-service/internal/pkg/cookie"
	"jobportal-service/internal/pkg/jwt"
	"jobportal-service/internal/pkg/ratelimit"
	"jobportal-service/internal/repository/memory"
	"jobportal-service/internal/repository/postgres"
	authUsecase "jobportal-service/internal/service/auth"
	"jobportal-service/internal/service/upload"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	memoryDatabaseURL = "memory://"
	shutdownTimeout   = 5 * time.Second
)

// Deps is everything the HTTP surface needs. Tests build it directly.
type Deps struct {
	AuthService *authUsecase.AuthService
	Cookies     cookie.Policy
	Origins     []string
	UploadDir   string
	Logger      *zap.Logger
}

// NewHandler assembles the gin engine and wraps it in CORS so preflight
// requests are answered before routing.
func NewHandler(d Deps) http.Handler {
	engine := gin.New()
	engine.Use(
		middleware.RecoveryMiddleware(d.Logger),
		middleware.LoggingMiddleware(d.Logger),
	)

	SetupRouter(engine, &Handlers{
		UserHandler:    userHandler.NewUserHandler(d.AuthService, d.Cookies, d.Logger),
		AuthMiddleware: middleware.NewAuthMiddleware(d.AuthService),
		UploadDir:      d.UploadDir,
	})

	return middleware.CORS(d.Origins, engine)
}

type Server struct {
	cfg     config.AppConfig
	logger  *zap.Logger
	httpSrv *http.Server
	closers []func()
}

func NewServer(cfg config.AppConfig, logger *zap.Logger) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	return &Server{cfg: cfg, logger: logger}
}

// Run wires storage and services and serves until ctx is cancelled, then
// drains in-flight requests and closes storage.
func (s *Server) Run(ctx context.Context) error {
	jwtManager, err := jwt.NewManager(s.cfg.JWT)
	if err != nil {
		return err
	}
	defer s.close()

	var opts []authUsecase.Option
	var users authUsecase.UserRepository

	if strings.HasPrefix(s.cfg.DatabaseURL, memoryDatabaseURL) {
		s.logger.Warn("using in-memory user store, accounts are lost on restart")
		users = memory.NewUserRepository()
	} else {
		// ----- PostgreSQL -----
		pool, err := db.ConnectDB(ctx, s.cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		s.closers = append(s.closers, pool.Close)
		database := postgres.NewDB(pool)
		if err := postgres.Migrate(ctx, database); err != nil {
			return err
		}
		s.logger.Info("connected to PostgreSQL")
		users = postgres.NewUserRepository(database.Pool())

		// ----- Redis -----
		redisClient, err := db.NewRedisClient(ctx, db.RedisConfig{
			Address:  s.cfg.RedisAddr,
			Password: s.cfg.RedisPass,
			PoolSize: 10,
		})
		if err != nil {
			return err
		}
		s.closers = append(s.closers, func() { _ = redisClient.Close() })

		limiter := ratelimit.NewLoginLimiter(redisClient, s.cfg.LoginMaxAttempts, s.cfg.LoginWindow)
		opts = append(opts, authUsecase.WithLoginLimiter(limiter))
		s.logger.Info("connected to Redis",
			zap.Int64("login_max_attempts", s.cfg.LoginMaxAttempts),
			zap.Duration("login_window", limiter.Window()),
		)
	}

	// ----- Resume storage -----
	resumes, err := upload.NewLocalStore(s.cfg.UploadDir, "/uploads")
	if err != nil {
		return err
	}
	opts = append(opts, authUsecase.WithResumeStore(resumes))

	authService := authUsecase.NewAuthService(users, jwtManager, s.logger, opts...)

	s.httpSrv = &http.Server{
		Addr: s.cfg.HTTPAddr,
		Handler: NewHandler(Deps{
			AuthService: authService,
			Cookies:     cookie.NewPolicy(s.cfg.CookieExpireDays, s.cfg.IsProduction()),
			Origins:     s.cfg.AllowedOrigins(),
			UploadDir:   resumes.Dir(),
			Logger:      s.logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("server listening",
		zap.String("addr", s.cfg.HTTPAddr),
		zap.String("env", s.cfg.Environment),
		zap.Strings("origins", s.cfg.AllowedOrigins()),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.httpSrv.Shutdown(shutdownCtx)
}

func (s *Server) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}
