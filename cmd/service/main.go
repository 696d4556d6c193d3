package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // pprof слушает отдельный ${PPROF_PORT}
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	application "courier-tracking/internal/app"
	"courier-tracking/internal/gateway/kafka/shipment_events"
	"courier-tracking/internal/handlers/rest/admin_login_post"
	"courier-tracking/internal/handlers/rest/healthcheck_head"
	"courier-tracking/internal/handlers/rest/ping_get"
	"courier-tracking/internal/handlers/rest/profile_put"
	"courier-tracking/internal/handlers/rest/shipment_create_post"
	"courier-tracking/internal/handlers/rest/shipment_delete"
	"courier-tracking/internal/handlers/rest/shipment_put"
	"courier-tracking/internal/handlers/rest/shipments_get"
	"courier-tracking/internal/handlers/rest/track_get"
	"courier-tracking/internal/handlers/rest/tracking_update_post"
	"courier-tracking/internal/pkg/cache"
	"courier-tracking/internal/pkg/config"
	"courier-tracking/internal/pkg/dotenv"
	"courier-tracking/internal/pkg/kafka"
	metrics_system "courier-tracking/internal/pkg/metrics"
	"courier-tracking/internal/pkg/middlewares/auth"
	"courier-tracking/internal/pkg/middlewares/cors"
	"courier-tracking/internal/pkg/middlewares/graceful_shutdown"
	"courier-tracking/internal/pkg/middlewares/metrics"
	"courier-tracking/internal/pkg/middlewares/rate_limiter"
	"courier-tracking/internal/pkg/middlewares/timeout"
	"courier-tracking/internal/pkg/migrations"
	"courier-tracking/internal/pkg/postgres"
	shipmentService "courier-tracking/internal/service/shipment"
	"courier-tracking/pkg/logger"
	"courier-tracking/pkg/logger/zap_adapter"
	"courier-tracking/pkg/token_bucket"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	systemMetricsInterval = 5 * time.Second
	rateLimiterIdleTTL    = 10 * time.Minute
)

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter()
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With(logger.NewField("app", "courier-tracking"))

	mainLog.Info("starting courier-tracking service")

	if err := dotenv.Load(); err != nil {
		mainLog.Error("failed to load .env file", logger.NewField("error", err))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // ongoingCtx и shutdownCtx намеренно наследуются от context.Background()
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	if err := migrations.Up(ctx, log, pool); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	redis, err := cache.Connect(ctx, log, cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			runLog.Error("failed to close Redis connection", logger.NewField("error", err))
		}
	}()

	publisher, closePublisher, err := newPublisher(ctx, log, &cfg.Kafka)
	if err != nil {
		return fmt.Errorf("kafka: %w", err)
	}
	defer closePublisher()

	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, redis, publisher, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	if err := businessApp.ServiceAdmin.EnsureBootstrapAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	metrics_system.StartSystemMetricsCollector(ctx, systemMetricsInterval)

	// ongoingCtx отдается в BaseContext и не отменяется по SIGTERM,
	// только после server.Shutdown(), чтобы in-flight запросы доработали.
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	router := initRouter(ongoingCtx, log, &isShuttingDown, businessApp, cfg.Server, pool, redis)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: cors.Middleware(cfg.Server.CORSAllowedOrigins)(router),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				pprofServerErr <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // nil канал, если pprof выключен
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	var pprofErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		pprofErr = pprofServer.Shutdown(shutdownCtx)
		if pprofErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", pprofErr))
		}
	}

	stopOngoingGracefully()
	if err != nil || pprofErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	businessApp.BackgroundWorkers.Wait()
	runLog.Info("Server stopped")
	return nil
}

// newPublisher без Kafka события мутаций не публикуются.
func newPublisher(ctx context.Context, log logger.Logger, cfg *config.Kafka) (shipmentService.Publisher, func(), error) {
	if !cfg.Enabled {
		log.Warn("Kafka disabled, shipment events are not published")
		return shipment_events.NoopPublisher{}, func() {}, nil
	}

	producer, err := kafka.NewSyncProducer(ctx, log, cfg)
	if err != nil {
		return nil, nil, err
	}

	closeProducer := func() {
		if err := producer.Close(); err != nil {
			log.Error("failed to close Kafka producer", logger.NewField("error", err))
		}
	}
	return shipment_events.New(producer, cfg.Topic), closeProducer, nil
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	app *application.Application,
	cfg config.HTTPServer,
	dependencies ...healthcheck_head.Dependency,
) http.Handler {
	router := mux.NewRouter()

	limiter := token_bucket.NewKeyedLimiter(cfg.RateLimiterBurst, float64(cfg.RateLimiterQPS), rateLimiterIdleTTL)

	router.Use(graceful_shutdown.Middleware(log, isShuttingDown, ongoingCtx))
	router.Use(timeout.Middleware(cfg.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, limiter))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, dependencies...)).Methods(http.MethodHead)
	router.Handle("/ping", ping_get.New(log)).Methods(http.MethodGet)

	router.Handle("/track/{trackingId}", track_get.New(log, app.ServiceShipment)).Methods(http.MethodGet)
	router.Handle("/admin/login", admin_login_post.New(log, app.ServiceAdmin)).Methods(http.MethodPost)

	adminRouter := router.PathPrefix("/admin").Subrouter()
	adminRouter.Use(auth.Middleware(log, app.ServiceAdmin))
	adminRouter.Handle("/create-shipment", shipment_create_post.New(log, app.ServiceShipment)).Methods(http.MethodPost)
	adminRouter.Handle("/all-shipments", shipments_get.New(log, app.ServiceShipment)).Methods(http.MethodGet)
	adminRouter.Handle("/shipment/{id}", shipment_put.New(log, app.ServiceShipment)).Methods(http.MethodPut)
	adminRouter.Handle("/shipment/{id}", shipment_delete.New(log, app.ServiceShipment)).Methods(http.MethodDelete)
	adminRouter.Handle("/update-tracking", tracking_update_post.New(log, app.ServiceShipment)).Methods(http.MethodPost)
	adminRouter.Handle("/profile", profile_put.New(log, app.ServiceAdmin)).Methods(http.MethodPut)

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods(http.MethodHead)
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
