// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"insurance-service/internal/config"
	"insurance-service/internal/db"
	activityHandler "insurance-service/internal/handlers/activity"
	authHandler "insurance-service/internal/handlers/auth"
	claimHandler "insurance-service/internal/handlers/claim"
	customerHandler "insurance-service/internal/handlers/customer"
	dashboardHandler "insurance-service/internal/handlers/dashboard"
	policyHandler "insurance-service/internal/handlers/policy"
	"insurance-service/internal/middleware"
	"insurance-service/internal/pkg/jwt"
	"insurance-service/internal/pkg/session"
	"insurance-service/internal/repository/postgres"
	activitySvc "insurance-service/internal/service/activity"
	authSvc "insurance-service/internal/service/auth"
	claimSvc "insurance-service/internal/service/claim"
	customerSvc "insurance-service/internal/service/customer"
	dashboardSvc "insurance-service/internal/service/dashboard"
	policySvc "insurance-service/internal/service/policy"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	pool   *pgxpool.Pool
	rdb    *redis.Client
	http   *http.Server
}

// NewServer wires the whole service: storage, token manager, repositories,
// services, handlers and the route tree. It also seeds the administrator
// account so a fresh deployment is usable immediately.
func NewServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	pool, err := db.ConnectPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	// Redis is optional; without it the service runs with rate limiting and
	// dashboard caching disabled.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = db.NewRedisClient(db.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			logger.Warn("redis unavailable, continuing without it", zap.Error(err))
			rdb = nil
		}
	}

	jwtManager, err := jwt.LoadAndBuild(jwt.Config{
		PrivPath: cfg.JWTPrivateKeyPath,
		PubPath:  cfg.JWTPublicKeyPath,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.AccessTokenTTL,
		KID:      cfg.JWTKeyID,
	})
	if err != nil {
		return nil, fmt.Errorf("jwt keys: %w", err)
	}

	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	policyRepo := postgres.NewPolicyRepository(pool)
	assignRepo := postgres.NewCustomerPolicyRepository(pool)
	claimRepo := postgres.NewClaimRepository(pool)
	activityRepo := postgres.NewActivityLogRepository(pool)
	refreshRepo := postgres.NewRefreshTokenRepository(pool)

	activityService := activitySvc.NewActivityService(activityRepo, logger)

	var rateLimiter authSvc.RateLimiter
	if rdb != nil {
		rateLimiter = session.NewRateLimiter(rdb)
	}

	authService := authSvc.NewAuthService(
		userRepo, refreshRepo, jwtManager,
		rateLimiter, activityService,
		cfg.RefreshTokenTTL, logger,
	)
	customerService := customerSvc.NewCustomerService(customerRepo, userRepo, activityService, logger)
	policyService := policySvc.NewPolicyService(policyRepo, customerRepo, assignRepo, activityService, logger)
	claimService := claimSvc.NewClaimService(claimRepo, customerRepo, assignRepo, activityService, logger)
	dashboardService := dashboardSvc.NewDashboardService(customerRepo, policyRepo, assignRepo, claimRepo, rdb, logger)

	if cfg.AdminPassword != "" {
		if err := authService.EnsureAdminExists(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			return nil, fmt.Errorf("admin bootstrap: %w", err)
		}
	} else {
		logger.Warn("ADMIN_PASSWORD not set, skipping admin bootstrap")
	}

	handlers := &Handlers{
		Auth:      authHandler.NewAuthHandler(authService, logger),
		Customer:  customerHandler.NewCustomerHandler(customerService),
		Policy:    policyHandler.NewPolicyHandler(policyService),
		Claim:     claimHandler.NewClaimHandler(claimService),
		Activity:  activityHandler.NewActivityHandler(activityService),
		Dashboard: dashboardHandler.NewDashboardHandler(dashboardService),
	}

	authMW := middleware.NewAuthMiddleware(authService)
	engine := SetupRouter(handlers, authMW, cfg.CORSAllowedOrigins, logger)

	return &Server{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		rdb:    rdb,
		http: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Start serves HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("server listening", zap.String("addr", s.cfg.HTTPAddr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and closes connections.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)

	if s.rdb != nil {
		if cerr := s.rdb.Close(); cerr != nil {
			s.logger.Warn("failed to close redis client", zap.Error(cerr))
		}
	}
	s.pool.Close()

	return err
}
