package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-service/internal/adapters/cache"
	"storefront-service/internal/adapters/catalog_api_client"
	logger_adapter "storefront-service/internal/adapters/logger"
	"storefront-service/internal/adapters/memcatalog"
	postgres_adapter "storefront-service/internal/adapters/postgres"
	rabbitmq_adapter "storefront-service/internal/adapters/rabbitmq"
	"storefront-service/internal/adapters/rest"
	"storefront-service/internal/configs"
	"storefront-service/internal/constants"
	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/port"
	"storefront-service/internal/core/usecase"
	fluentlogger "storefront-service/pkg/fluent_logger"
	"storefront-service/pkg/postgres"
	"storefront-service/pkg/rabbitmq/rabbitmq_common"
	"storefront-service/pkg/rabbitmq/rabbitmq_consumer"
)

type catalogBackend interface {
	port.CatalogPort
	port.SellerDirectoryPort
}

// App holds every long-lived component of the service.
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	redisCache   *cache.RedisCache
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	connManager             *rabbitmq_common.ConnectionManager
	inventoryEventsListener port.EventListenerPort
	cacheSweeper            port.EventListenerPort
}

// NewApp is the composition root: every dependency is created and wired here.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	app := &App{config: appConfig}

	// --- 1. Loggers ---
	baseLogger, err := app.initLoggers()
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	app.logger = appLogger

	// --- 2. Catalog backend ---
	backend, err := app.initCatalog(baseLogger)
	if err != nil {
		appLogger.Error("Failed to initialize catalog backend", err, port.Fields{"backend": appConfig.Catalog.Backend})
		app.closeResources()
		return nil, err
	}
	appLogger.Info("Catalog backend initialized.", port.Fields{"backend": appConfig.Catalog.Backend})

	// --- 3. Caches ---
	store, err := app.initCache()
	if err != nil {
		appLogger.Error("Failed to initialize cache", err, port.Fields{"backend": appConfig.Cache.Backend})
		app.closeResources()
		return nil, err
	}

	var catalog port.CatalogPort = backend
	if store != nil {
		catalog = cache.NewCachedCatalog(backend, store, appConfig.Cache.PageTTL)
	}
	appLogger.Info("Cache initialized.", port.Fields{"backend": appConfig.Cache.Backend})

	// --- 4. Use cases ---
	policy, err := domain.ParseSelfPolicy(appConfig.Facets.SelfPolicy)
	if err != nil {
		app.closeResources()
		return nil, err
	}
	resolveFacetsUseCase := usecase.NewResolveFacetOptionsUseCase(catalog, store, usecase.ResolveFacetOptionsConfig{
		Policy:        policy,
		CacheTTL:      appConfig.Cache.FacetTTL,
		Concurrency:   appConfig.Facets.Concurrency,
		FlightTimeout: appConfig.Facets.FlightTimeout,
	})
	decodeFiltersUseCase := usecase.NewDecodeFiltersUseCase(resolveFacetsUseCase)
	searchInventoryUseCase := usecase.NewSearchInventoryUseCase(catalog, resolveFacetsUseCase, backend)
	applyFilterUseCase := usecase.NewApplyFilterUseCase(decodeFiltersUseCase)
	invalidateCacheUseCase := usecase.NewInvalidateCacheUseCase(store)

	appLogger.Info("All use cases initialized.", port.Fields{"facet_policy": string(policy)})

	// --- 5. Inbound adapters ---
	if appConfig.RabbitMQ.Enable {
		if err := app.initInventoryListener(baseLogger, invalidateCacheUseCase); err != nil {
			appLogger.Error("Failed to create inventory events listener", err, nil)
			app.closeResources()
			return nil, err
		}
		appLogger.Info("Inventory Events Listener initialized.", nil)
	}

	inventoryHandler := rest.NewInventoryHandler(decodeFiltersUseCase, searchInventoryUseCase, resolveFacetsUseCase)
	filterHandler := rest.NewFilterHandler(applyFilterUseCase)
	app.apiServer = rest.NewServer(appConfig.Rest, inventoryHandler, filterHandler, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	return app, nil
}

func (a *App) initLoggers() (port.LoggerPort, error) {
	cfg := a.config.Logger
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(cfg.Level),
		IsJSON:   cfg.JSON,
		UseColor: cfg.Color,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	if cfg.FluentEnable {
		fluentClient, err := fluentlogger.NewClient(fluentlogger.Config{
			Host:      cfg.FluentHost,
			Port:      cfg.FluentPort,
			TagPrefix: a.config.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}
		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, cfg.FluentTag, parseLogLevel(cfg.FluentLevel))
		if err != nil {
			fluentClient.Close()
			return nil, fmt.Errorf("failed to create fluentbit adapter: %w", err)
		}
		a.fluentClient = fluentClient
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiLoggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": a.config.AppName})
	baseLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": cfg.FluentEnable,
	})
	return baseLogger, nil
}

func (a *App) initCatalog(baseLogger port.LoggerPort) (catalogBackend, error) {
	cfg := a.config.Catalog
	switch cfg.Backend {
	case configs.CatalogBackendPostgres:
		pool, err := postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: cfg.DatabaseURL})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		a.dbPool = pool
		if err := postgres_adapter.EnsureSchema(context.Background(), pool); err != nil {
			return nil, err
		}
		return postgres_adapter.NewCatalogAdapter(pool)
	case configs.CatalogBackendHTTP:
		return catalog_api_client.NewClient(cfg.BaseURL, cfg.Timeout), nil
	default:
		catalog, err := memcatalog.LoadFile(cfg.FixturePath)
		if err != nil {
			return nil, err
		}
		baseLogger.Info("Loaded inventory fixture", port.Fields{"path": cfg.FixturePath, "items": catalog.Len()})
		return catalog, nil
	}
}

// initCache returns nil when caching is disabled.
func (a *App) initCache() (port.CachePort, error) {
	cfg := a.config.Cache
	switch cfg.Backend {
	case configs.CacheBackendRedis:
		redisCache, err := cache.NewRedisCache(context.Background(), cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
		if err != nil {
			return nil, err
		}
		a.redisCache = redisCache
		return redisCache, nil
	case configs.CacheBackendMemory:
		memoryCache := cache.NewMemoryCache()
		a.cacheSweeper = cache.NewSweeper(memoryCache, cfg.SweepInterval)
		return memoryCache, nil
	default:
		return nil, nil
	}
}

func (a *App) initInventoryListener(baseLogger port.LoggerPort, invalidate *usecase.InvalidateCacheUseCase) error {
	url := a.config.RabbitMQ.URL

	connManagerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"})
	connManager, err := rabbitmq_common.NewConnectionManager(url, rabbitmq_adapter.NewPkgLoggerBridge(connManagerLogger))
	if err != nil {
		return fmt.Errorf("failed to create connection manager: %w", err)
	}
	a.connManager = connManager

	consumerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_consumer"})
	consumerCfg := rabbitmq_consumer.ConsumerConfig{
		Config:                 rabbitmq_common.Config{URL: url},
		QueueName:              constants.QueueInventoryChanged,
		DeclareQueue:           true,
		DurableQueue:           true,
		ExchangeNameForBind:    constants.ExchangeInventory,
		DeclareExchangeForBind: true,
		ExchangeTypeForBind:    constants.ExchangeInventoryType,
		DurableExchangeForBind: true,
		RoutingKeyForBind:      constants.RoutingKeyInventory,
		PrefetchCount:          constants.InvalidationBatchSize,
		ConsumerTag:            a.config.AppName + "-inventory-changed",

		EnableRetryMechanism: true,
		RetryExchange:        constants.RetryExchange,
		RetryQueue:           constants.RetryQueue,
		RetryTTL:             constants.RetryTTLMillis,
		FinalDLXExchange:     constants.FinalDLXExchange,
		FinalDLQ:             constants.FinalDLQ,
		FinalDLQRoutingKey:   constants.FinalDLQRoutingKey,
		MaxRetries:           constants.MaxRetries,

		Logger: rabbitmq_adapter.NewPkgLoggerBridge(consumerLogger),
	}

	listener, err := rabbitmq_adapter.NewInventoryChangedConsumerAdapter(consumerCfg, invalidate, connManager, baseLogger)
	if err != nil {
		return err
	}
	a.inventoryEventsListener = listener
	return nil
}

// Run starts every component and blocks until a signal or a component failure.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Rest.ShutdownTimeout)
		defer cancel()
		if err := a.apiServer.Stop(shutdownCtx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}

		a.logger.Info("Waiting for background processes to finish...", nil)
		wg.Wait()
		a.logger.Info("All background processes finished.", nil)

		a.closeResources()
		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// fluent may already be gone
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 2)

	startListener := func(name string, listener port.EventListenerPort) {
		defer wg.Done()
		listenerLogger := a.logger.WithFields(port.Fields{"listener_name": name})
		listenerLogger.Info("Starting listener...", nil)

		if err := listener.Start(appCtx); err != nil {
			listenerLogger.Error("Listener stopped with an unexpected error", err, nil)
			errorsCh <- fmt.Errorf("%s error: %w", name, err)
		} else {
			listenerLogger.Info("Listener stopped gracefully due to context cancellation.", nil)
		}
	}

	if a.inventoryEventsListener != nil {
		wg.Add(1)
		go startListener("Inventory Events Listener", a.inventoryEventsListener)
	}
	if a.cacheSweeper != nil {
		wg.Add(1)
		go startListener("Memory Cache Sweeper", a.cacheSweeper)
	}

	go func() {
		if err := a.apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)

	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
		runErr = err
	}

	cancelApp()
	return runErr
}

// closeResources releases whatever NewApp managed to open.
func (a *App) closeResources() {
	if a.inventoryEventsListener != nil {
		if err := a.inventoryEventsListener.Close(); err != nil {
			a.logError("Error closing inventory events listener", err)
		}
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logError("Error closing RabbitMQ connection manager", err)
		}
	}
	if a.redisCache != nil {
		if err := a.redisCache.Close(); err != nil {
			a.logError("Error closing redis client", err)
		}
	}
	if a.dbPool != nil {
		a.dbPool.Close()
	}
}

func (a *App) logError(msg string, err error) {
	if a.logger != nil {
		a.logger.Error(msg, err, nil)
		return
	}
	log.Printf("%s: %v", msg, err)
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
