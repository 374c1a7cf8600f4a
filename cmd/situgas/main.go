package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"github.com/KasumiMercury/situgas/internal/config"
	"github.com/KasumiMercury/situgas/internal/handler"
	"github.com/KasumiMercury/situgas/internal/health"
	"github.com/KasumiMercury/situgas/internal/infra/identity"
	"github.com/KasumiMercury/situgas/internal/infra/notificationrecorder"
	"github.com/KasumiMercury/situgas/internal/infra/repository"
	"github.com/KasumiMercury/situgas/internal/observability/logging"
	"github.com/KasumiMercury/situgas/internal/observability/metrics"
	"github.com/KasumiMercury/situgas/internal/observability/middleware"
	"github.com/KasumiMercury/situgas/internal/service/auth"
	"github.com/KasumiMercury/situgas/internal/service/catalog"
	"github.com/KasumiMercury/situgas/internal/service/notify"
	"github.com/KasumiMercury/situgas/internal/service/scheduler"
	"github.com/KasumiMercury/situgas/internal/service/taskstore"
)

// Version is set via ldflags at build time
var Version = "dev"

const module = logging.Module("situgas-api")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	obs, err := initObservability(ctx, cfg.LogLevel)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	reminderMetrics, err := metrics.NewReminderMetrics()
	if err != nil {
		slog.Error("failed to initialize reminder metrics", slog.String("error", err.Error()))
		return 1
	}

	catalogMetrics := metrics.NewCatalogMetrics(prometheus.DefaultRegisterer)

	db, err := repository.OpenPostgres(ctx, cfg.Database.DSN(), repository.PoolOptions{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect database",
			slog.String("event", "db.connect.fail"),
			slog.String("dsn", cfg.Database.Redacted()),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Warn("failed to close database", slog.String("error", err.Error()))
			}
		}
	}()

	if err := repository.Migrate(ctx, db); err != nil {
		slog.Error("failed to migrate database",
			slog.String("event", "db.migrate.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	slog.Info("database connected", slog.String("dsn", cfg.Database.Redacted()))

	redisClient, err := newRedisClient(ctx, cfg.Redis)
	if err != nil {
		return 1
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	recorder, err := notificationrecorder.NewRecorder(ctx, notificationrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize notification recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := recorder.Flush(flushCtx); err != nil {
			slog.Warn("failed to flush notification recorder", slog.String("error", err.Error()))
		}
		if err := recorder.Close(); err != nil {
			slog.Warn("failed to close notification recorder", slog.String("error", err.Error()))
		}
	}()

	pushQueue, cleanup, err := initPushQueue(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize push queue", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("push queue cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	courseRepo := repository.NewCourseRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	userRepo := repository.NewUserRepository(db)
	lookupRepo := repository.NewLookupRepository(db)

	stateRepo := repository.NewNotificationStateRepository(redisClient, cfg.Redis.KeyPrefix, cfg.Reminder.SessionTTL)
	sessionRegistry := repository.NewSessionRegistry(redisClient, cfg.Redis.KeyPrefix, cfg.Reminder.SessionTTL)

	sinks := []notify.Sink{notify.NewRecorderSink(recorder)}
	if pushQueue != nil {
		sinks = append(sinks, notify.NewPushSink(pushQueue))
	}
	notifyService := notify.NewService(
		taskstore.NewRemote(taskRepo),
		stateRepo,
		sessionRegistry,
		reminderMetrics,
		sinks...,
	)

	supabase := identity.NewSupabaseClient(cfg.Auth.SupabaseURL, cfg.Auth.SupabaseAnonKey)
	var verifier identity.TokenVerifier = supabase
	if cfg.Auth.JWTSecret != "" {
		verifier = identity.NewJWTVerifier(cfg.Auth.JWTSecret)
	}

	authService := auth.NewService(supabase, verifier, userRepo, auditRepo, notifyService, catalogMetrics)
	courseService := catalog.NewCourseService(courseRepo, auditRepo, catalogMetrics)
	taskService := catalog.NewTaskService(courseRepo, taskRepo, auditRepo, catalogMetrics)
	reminderService := catalog.NewReminderService(taskRepo, reminderRepo, catalogMetrics)
	dashboardService := catalog.NewDashboardService(courseRepo, taskRepo)

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health/live", "/health/ready", "/metrics"},
		Module:      module,
		TracerName:  "github.com/KasumiMercury/situgas/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(Version).
		Register("postgres", health.PostgresPing(db)).
		Register("redis", health.RedisPing(redisClient))
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handler.RegisterRoutes(r, handler.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Courses:      handler.NewCourseHandler(courseService, taskService),
		Tasks:        handler.NewTaskHandler(taskService, reminderService),
		Lookups:      handler.NewLookupHandler(lookupRepo, dashboardService),
		Notification: handler.NewNotificationHandler(notifyService),
	}, handler.RequireAuth(authService))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", logging.RequestIDHeader},
		ExposedHeaders:   []string{logging.RequestIDHeader},
		AllowCredentials: !containsWildcard(cfg.CORS.AllowedOrigins),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           wrapHandler(corsHandler.Handler(r)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	reminderScheduler := scheduler.New(notifyService, cfg.Reminder.PollInterval, cfg.Reminder.Concurrency, reminderMetrics)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Duration("reminder_poll_interval", cfg.Reminder.PollInterval),
			slog.Duration("reminder_session_ttl", cfg.Reminder.SessionTTL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return reminderScheduler.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}

	slog.Info("server exited properly")
	return 0
}

func newRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(opts)

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		_ = redisClient.Close()
		return nil, err
	}

	slog.Info("redis connected", slog.String("addr", cfg.Addr))
	return redisClient, nil
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
