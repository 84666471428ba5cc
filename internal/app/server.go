// internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/adiair/PlotAura/internal/config"
	"github.com/adiair/PlotAura/internal/db"
	listingHandler "github.com/adiair/PlotAura/internal/handlers/listing"
	reviewHandler "github.com/adiair/PlotAura/internal/handlers/review"
	userHandler "github.com/adiair/PlotAura/internal/handlers/user"
	"github.com/adiair/PlotAura/internal/identity"
	"github.com/adiair/PlotAura/internal/middleware"
	"github.com/adiair/PlotAura/internal/pkg/render"
	"github.com/adiair/PlotAura/internal/pkg/session"
	"github.com/adiair/PlotAura/internal/repository/mongodb"
	accountUsecase "github.com/adiair/PlotAura/internal/service/account"
	listingUsecase "github.com/adiair/PlotAura/internal/service/listing"
	reviewUsecase "github.com/adiair/PlotAura/internal/service/review"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	mongo  *mongo.Client
	http   *http.Server
}

func NewServer() *Server {
	cfg := config.Load()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	return &Server{cfg: cfg, engine: gin.New()}
}

// Start wires the whole request pipeline and begins serving. A store
// connection failure here is fatal: the process must never serve without
// its database.
func (s *Server) Start() error {
	ctx := context.Background()

	if s.cfg.Secret == "" {
		return fmt.Errorf("SECRET must be set outside development")
	}

	// ----- Logger -----
	logger, err := newLogger(s.cfg)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- MongoDB -----
	client, err := db.ConnectMongo(s.cfg.AtlasDBURL)
	if err != nil {
		return err
	}
	s.mongo = client
	database := client.Database(s.cfg.DBName)
	logger.Info("connected to DB", zap.String("database", s.cfg.DBName))

	// ----- Repositories -----
	sessionRepo := mongodb.NewSessionRepository(database)
	userRepo := mongodb.NewUserRepository(database)
	listingRepo := mongodb.NewListingRepository(database)
	reviewRepo := mongodb.NewReviewRepository(database)

	idxCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := sessionRepo.EnsureIndexes(idxCtx); err != nil {
		return err
	}
	if err := userRepo.EnsureIndexes(idxCtx); err != nil {
		return err
	}

	// ----- Rate limiter -----
	// Redis shares the counters across replicas; without it the limiter
	// is per-process.
	var limiter middleware.Limiter
	if s.cfg.RedisAddr != "" {
		redisClient, err := db.NewRedisClient(db.RedisConfig{
			Addr:     s.cfg.RedisAddr,
			Password: s.cfg.RedisPass,
			PoolSize: 10,
		})
		if err != nil {
			return err
		}
		limiter = middleware.NewRedisLimiter(redisClient, s.cfg.RateLimitWindow, s.cfg.RateLimitMax)
		logger.Info("rate limiter backed by redis", zap.String("addr", s.cfg.RedisAddr))
	} else {
		limiter = middleware.NewMemoryLimiter(s.cfg.RateLimitWindow, s.cfg.RateLimitMax)
	}

	// ----- Sessions & identity -----
	codec := session.NewCookieCodec(s.cfg.Secret, s.cfg.CookieSecure)
	sessionManager := session.NewManager(sessionRepo, codec, s.cfg.SessionTTL, s.cfg.TouchAfter, logger)
	provider := identity.NewLocalProvider(userRepo)

	// ----- Rendering -----
	renderer, err := render.New(logger)
	if err != nil {
		return err
	}

	// ----- Services -----
	accountService := accountUsecase.NewService(userRepo, logger)
	listingService := listingUsecase.NewService(listingRepo, reviewRepo, logger)
	reviewService := reviewUsecase.NewService(reviewRepo, listingRepo, logger)

	// ----- Handlers -----
	handlers := &Handlers{
		User:    userHandler.NewHandler(accountService, provider, renderer, logger),
		Listing: listingHandler.NewHandler(listingService, reviewService, userRepo, renderer, logger),
		Review:  reviewHandler.NewHandler(reviewService, logger),
	}

	// ----- Pipeline -----
	// Strictly linear per request; each stage either continues the chain,
	// responds, or signals an error that the terminator renders.
	s.engine.Use(
		middleware.Recovery(logger, renderer),
		middleware.Logging(logger),
		middleware.ErrorPage(logger, renderer),
		middleware.SecurityHeaders(),
		middleware.SanitizeInput(),
		middleware.RateLimit(limiter, logger),
		middleware.ResolveSession(sessionManager),
		middleware.AttachIdentity(provider, logger),
		middleware.Locals(s.cfg.MapToken),
	)

	SetupRouter(s.engine, handlers)

	s.http = &http.Server{
		Addr: s.cfg.HTTPAddr,
		// Method override must run before route dispatch.
		Handler:           middleware.MethodOverride(s.engine),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("server listening", zap.String("addr", s.cfg.HTTPAddr), zap.String("env", s.cfg.Env))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then releases the database clients.
func (s *Server) Shutdown(ctx context.Context) error {
	var firstErr error
	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if s.mongo != nil {
		if err := s.mongo.Disconnect(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func newLogger(cfg config.AppConfig) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
