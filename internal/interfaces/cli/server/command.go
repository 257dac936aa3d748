package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	checkoutUsecases "github.com/kazihub-inc/kazihub/internal/application/checkout/usecases"
	entitlementUsecases "github.com/kazihub-inc/kazihub/internal/application/entitlement/usecases"
	planUsecases "github.com/kazihub-inc/kazihub/internal/application/plan/usecases"
	"github.com/kazihub-inc/kazihub/internal/domain/plan"
	"github.com/kazihub-inc/kazihub/internal/domain/shared/events"
	"github.com/kazihub-inc/kazihub/internal/infrastructure/auth"
	"github.com/kazihub-inc/kazihub/internal/infrastructure/cache"
	"github.com/kazihub-inc/kazihub/internal/infrastructure/config"
	"github.com/kazihub-inc/kazihub/internal/infrastructure/database"
	"github.com/kazihub-inc/kazihub/internal/infrastructure/draftstore"
	"github.com/kazihub-inc/kazihub/internal/infrastructure/gateway"
	"github.com/kazihub-inc/kazihub/internal/infrastructure/migration"
	"github.com/kazihub-inc/kazihub/internal/infrastructure/pubsub"
	"github.com/kazihub-inc/kazihub/internal/infrastructure/repository"
	"github.com/kazihub-inc/kazihub/internal/infrastructure/scheduler"
	httpRouter "github.com/kazihub-inc/kazihub/internal/interfaces/http"
	"github.com/kazihub-inc/kazihub/internal/interfaces/http/handlers"
	"github.com/kazihub-inc/kazihub/internal/interfaces/http/middleware"
	"github.com/kazihub-inc/kazihub/internal/shared/biztime"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the KaziHub entitlement server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup (not recommended for production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := biztime.Init(""); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	log.Infow("starting server", "environment", env, "auto_migrate", autoMigrate)

	gin.SetMode(mapEnvToGinMode(env))
	gin.DefaultWriter = io.Discard

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if autoMigrate {
		if env == "production" {
			log.Warnw("auto-migration is enabled in production environment")
		}
		manager := migration.NewManager(cfg.Migration.Strategy, cfg.Migration.Path)
		if err := manager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		log.Infow("auto-migration completed")
	}

	dispatcher := events.NewInMemoryEventDispatcher(100, log)
	if err := dispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start event dispatcher: %w", err)
	}
	defer func() {
		if err := dispatcher.Stop(); err != nil {
			log.Errorw("failed to stop event dispatcher", "error", err)
		}
	}()

	// Redis backs the premium projection and the change-event fanout. Both
	// are optional: without Redis the evaluator answers every access check.
	var projectionCache entitlementUsecases.ProjectionCache
	var projectionReader middleware.PremiumProjection
	if cfg.Redis.Host != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		projectionTTL := time.Duration(cfg.Entitlement.ProjectionTTLMinute) * time.Minute
		premiumCache := cache.NewPremiumProjectionCache(redisClient, projectionTTL, log)
		projectionCache = premiumCache
		projectionReader = premiumCache

		bus := pubsub.NewRedisEntitlementEventBus(redisClient, log)
		if err := pubsub.RegisterEntitlementBridge(dispatcher, bus, log); err != nil {
			return fmt.Errorf("failed to register entitlement event bridge: %w", err)
		}
		log.Infow("redis projection and event fanout enabled", "addr", cfg.Redis.GetAddr())
	} else {
		noop := cache.NewNoopProjectionCache()
		projectionCache = noop
		projectionReader = noop
		log.Infow("redis not configured, premium projection disabled")
	}

	entitlementRepo := repository.NewEntitlementRepository(database.Get(), log)
	trialUsageRepo := repository.NewTrialUsageRepository(database.Get(), log)
	cyclePreferenceRepo := repository.NewCyclePreferenceRepository(database.Get(), log)
	catalog := plan.DefaultCatalog()

	draftStore := draftstore.NewMemoryStore(log)
	draftStore.Start()
	defer draftStore.Stop()

	settleDelay := time.Duration(cfg.Entitlement.SettleDelayMillis) * time.Millisecond
	settlementGateway := gateway.NewSimulatedGateway(settleDelay, log)

	evaluateAccessUC := entitlementUsecases.NewEvaluateAccessUseCase(entitlementRepo, projectionCache, dispatcher, log)
	startTrialUC := entitlementUsecases.NewStartTrialUseCase(entitlementRepo, trialUsageRepo, catalog, projectionCache, dispatcher, log)
	cancelUC := entitlementUsecases.NewCancelEntitlementUseCase(entitlementRepo, projectionCache, dispatcher, log)
	listEntitlementsUC := entitlementUsecases.NewListEntitlementsUseCase(entitlementRepo, log)
	expireTrialsUC := entitlementUsecases.NewExpireTrialsUseCase(entitlementRepo, projectionCache, dispatcher, log)

	draftTTL := time.Duration(cfg.Entitlement.CheckoutTTLMinutes) * time.Minute
	beginCheckoutUC := checkoutUsecases.NewBeginCheckoutUseCase(draftStore, catalog, draftTTL, log)
	selectMethodUC := checkoutUsecases.NewSelectMethodUseCase(draftStore, catalog, log)
	submitDetailsUC := checkoutUsecases.NewSubmitDetailsUseCase(draftStore, catalog, log)
	confirmCheckoutUC := checkoutUsecases.NewConfirmCheckoutUseCase(draftStore, settlementGateway, entitlementRepo, projectionCache, dispatcher, catalog, log)
	retryCheckoutUC := checkoutUsecases.NewRetryCheckoutUseCase(draftStore, catalog, log)
	getCheckoutUC := checkoutUsecases.NewGetCheckoutUseCase(draftStore, catalog, log)
	abandonCheckoutUC := checkoutUsecases.NewAbandonCheckoutUseCase(draftStore, log)

	cyclePreferenceUC := planUsecases.NewCyclePreferenceUseCase(cyclePreferenceRepo, log)

	sweepInterval := time.Duration(cfg.Entitlement.ExpirySweepSeconds) * time.Second
	expiryScheduler := scheduler.NewTrialExpiryScheduler(expireTrialsUC, sweepInterval, log)
	expiryScheduler.Start(context.Background())
	defer expiryScheduler.Stop()

	authMiddleware := middleware.NewAuthMiddleware(auth.NewJWTVerifier(cfg.Auth.JWT.Secret), log)
	entitlementGuard := middleware.NewEntitlementGuard(projectionReader, evaluateAccessUC, log)

	router := httpRouter.NewRouter(
		authMiddleware,
		entitlementGuard,
		handlers.NewPlanHandler(catalog, cyclePreferenceUC),
		handlers.NewEntitlementHandler(evaluateAccessUC, startTrialUC, cancelUC, listEntitlementsUC, cfg.Entitlement.TrialDays),
		handlers.NewCheckoutHandler(beginCheckoutUC, selectMethodUC, submitDetailsUC, confirmCheckoutUC, retryCheckoutUC, getCheckoutUC, abandonCheckoutUC),
		log,
	)
	router.SetupRoutes(cfg)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "address", cfg.Server.GetAddr(), "mode", gin.Mode())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorw("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return gin.ReleaseMode
	case "test", "testing":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
