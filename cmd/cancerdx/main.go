package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cancerdx/internal/config"
	"github.com/kailas-cloud/cancerdx/internal/db"
	dbMongo "github.com/kailas-cloud/cancerdx/internal/db/mongo"
	dbRedis "github.com/kailas-cloud/cancerdx/internal/db/redis"
	logpkg "github.com/kailas-cloud/cancerdx/internal/logger"
	"github.com/kailas-cloud/cancerdx/internal/metrics"
	"github.com/kailas-cloud/cancerdx/internal/model/forest"
	recordrepo "github.com/kailas-cloud/cancerdx/internal/repository/record"
	"github.com/kailas-cloud/cancerdx/internal/repository/recordcache"
	"github.com/kailas-cloud/cancerdx/internal/transport/api"
	chiTransport "github.com/kailas-cloud/cancerdx/internal/transport/chi"
	diagnosisuc "github.com/kailas-cloud/cancerdx/internal/usecase/diagnosis"
	healthuc "github.com/kailas-cloud/cancerdx/internal/usecase/health"
	"github.com/kailas-cloud/cancerdx/internal/version"
)

func main() {
	// .env first: it may set ENV itself
	if err := config.LoadDotEnv(".env"); err != nil {
		panic("failed to load .env: " + err.Error())
	}

	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, logpkg.Options{
		Level:      cfg.Logging.Level,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting cancerdx API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Bool("db_configured", cfg.Database.Configured()),
	)

	// The model is loaded eagerly; the service never starts without it.
	modelPath := cfg.Model.ResolvedPath()
	model, err := forest.Load(modelPath)
	if err != nil {
		logger.Fatal("Failed to load model", zap.String("path", modelPath), zap.Error(err))
	}
	forestClassifier, err := diagnosisuc.NewForestClassifier(model)
	if err != nil {
		logger.Fatal("Incompatible model", zap.String("path", modelPath), zap.Error(err))
	}
	logger.Info("Model loaded",
		zap.String("path", modelPath),
		zap.Int("trees", model.NumTrees()),
		zap.Int("features", model.NFeatures()),
	)

	// Register classifier metrics explicitly (no init())
	metrics.RegisterClassifierMetrics()

	ctx := context.Background()
	store, repo := openRecordStore(ctx, cfg, logger)
	if store != nil {
		defer store.Close()
	}

	// Pass nil interfaces (not typed nil pointers) when the store is unconfigured.
	var pinger healthuc.DBPinger
	if store != nil {
		pinger = store
	}

	classifier := diagnosisuc.NewInstrumentedClassifier(forestClassifier, logger)
	diagnosisSvc := diagnosisuc.New(classifier, repo, logger)
	healthSvc := healthuc.New(pinger, forestClassifier)

	server := chiTransport.NewServer(diagnosisSvc, healthSvc, logger).
		WithExposeErrors(cfg.HTTP.ExposeErrors)

	r := newRouter(cfg, server, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// openRecordStore connects the configured driver and builds the repository chain:
// driver repo -> LRU cache. It returns nils when the store is unconfigured or unreachable;
// the service then runs without persistence.
func openRecordStore(
	ctx context.Context, cfg config.Config, logger *zap.Logger,
) (db.Store, diagnosisuc.Repository) {
	if !cfg.Database.Configured() {
		logger.Warn("Record store is not configured; predictions will not be saved",
			zap.String("driver", cfg.Database.Driver))
		return nil, nil
	}

	var (
		store db.Store
		repo  diagnosisuc.Repository
	)
	switch cfg.Database.Driver {
	case config.DriverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.Database.Addrs,
			Password:  cfg.Database.Password,
			TLSCAFile: cfg.Database.TLSCAFile,
		})
		if err != nil {
			logger.Warn("Failed to create redis store", zap.Error(err))
			return nil, nil
		}
		store, repo = s, recordrepo.NewJSON(s, cfg.Database.KeyPrefix)
	default:
		s, err := dbMongo.NewStore(dbMongo.Config{
			URI:       cfg.Database.URI,
			Database:  cfg.Database.Name,
			TLSCAFile: cfg.Database.TLSCAFile,
		})
		if err != nil {
			logger.Warn("Failed to create mongo store", zap.Error(err))
			return nil, nil
		}
		store, repo = s, recordrepo.NewMongo(s, cfg.Database.Collection)
	}

	// Wait for database to be ready; an unreachable store degrades instead of crashing.
	timeout := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, timeout); err != nil {
		logger.Warn("Record store not ready; predictions will not be saved", zap.Error(err))
		store.Close()
		return nil, nil
	}
	logger.Info("Connected to record store", zap.String("driver", cfg.Database.Driver))

	if cfg.Cache.Records > 0 {
		cached, err := recordcache.New(repo, cfg.Cache.Records, metrics.RecordCacheTotal, logger)
		if err != nil {
			logger.Warn("Record cache disabled", zap.Error(err))
		} else {
			repo = cached
		}
	}

	return store, repo
}

// newRouter mounts the middleware chain and the API routes.
func newRouter(cfg config.Config, server api.ServerInterface, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.HTTP.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(metrics.Middleware())
	return api.HandlerWithOptions(server, api.ChiServerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, _ *http.Request, err error) {
			writeJSONError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		},
	})
}
