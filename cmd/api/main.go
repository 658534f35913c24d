package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/avargas/rentals-api/internal/config"
	accountHandler "github.com/avargas/rentals-api/internal/handler/account"
	authHandler "github.com/avargas/rentals-api/internal/handler/auth"
	contractHandler "github.com/avargas/rentals-api/internal/handler/contract"
	healthHandler "github.com/avargas/rentals-api/internal/handler/health"
	planHandler "github.com/avargas/rentals-api/internal/handler/plan"
	propertyHandler "github.com/avargas/rentals-api/internal/handler/property"
	tenantHandler "github.com/avargas/rentals-api/internal/handler/tenant"
	"github.com/avargas/rentals-api/internal/middleware"
	"github.com/avargas/rentals-api/internal/repository/postgres"
	"github.com/avargas/rentals-api/internal/router"
	"github.com/avargas/rentals-api/internal/service/account"
	"github.com/avargas/rentals-api/internal/service/auth"
	"github.com/avargas/rentals-api/internal/service/contract"
	"github.com/avargas/rentals-api/internal/service/plan"
	"github.com/avargas/rentals-api/internal/service/property"
	"github.com/avargas/rentals-api/internal/service/quota"
	"github.com/avargas/rentals-api/internal/service/tenant"
	"github.com/avargas/rentals-api/internal/session"
	"github.com/avargas/rentals-api/pkg/logger"
	"github.com/avargas/rentals-api/pkg/security"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logg := logger.New(&logger.Config{Level: cfg.Log.Level})
	log.Logger = logg

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)

	if err := postgres.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	if err := postgres.Seed(context.Background(), db, hasher, cfg.Admin); err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}

	sessions, err := newSessionStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize session store")
	}

	base := postgres.NewBaseRepository(db)
	planRepo := postgres.NewPlanRepository(base)
	userRepo := postgres.NewUserRepository(base)
	propertyRepo := postgres.NewPropertyRepository(base)
	tenantRepo := postgres.NewTenantRepository(base)
	contractRepo := postgres.NewContractRepository(base)

	quotaSvc := quota.NewService(planRepo, propertyRepo, tenantRepo, contractRepo)
	authSvc := auth.NewService(userRepo, planRepo, sessions, hasher)
	planSvc := plan.NewService(planRepo)
	accountSvc := account.NewService(userRepo, planRepo)
	propertySvc := property.NewService(propertyRepo, quotaSvc)
	tenantSvc := tenant.NewService(tenantRepo, quotaSvc)
	contractSvc := contract.NewService(contractRepo, propertyRepo, tenantRepo, quotaSvc)

	authMW := middleware.NewAuthMiddleware(sessions)

	cors := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		cors.AllowOrigins = cfg.CORS.AllowedOrigins
	}

	r := router.NewRouter(authMW, router.Handlers{
		Health:   healthHandler.NewHandler(db),
		Auth:     authHandler.NewHandler(authSvc),
		Plan:     planHandler.NewHandler(planSvc),
		Account:  accountHandler.NewHandler(authSvc, accountSvc, quotaSvc),
		Property: propertyHandler.NewHandler(propertySvc),
		Tenant:   tenantHandler.NewHandler(tenantSvc),
		Contract: contractHandler.NewHandler(contractSvc),
	}, router.Config{
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		CORS:           cors,
		MetricsPrefix:  "rentals_api",
	})
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server stopped")
}

func newSessionStore(cfg *config.Config) (session.Store, error) {
	switch cfg.Sessions.Backend {
	case "redis":
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("redis unreachable: %w", err)
		}
		return session.NewRedisStore(client, cfg.Sessions.TTL), nil
	case "memory", "":
		return session.NewMemoryStore(cfg.Sessions.TTL), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Sessions.Backend)
	}
}
