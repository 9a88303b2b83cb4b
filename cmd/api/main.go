// @title           Workpanel API
// @version         1.0
// @description     Multi-tenant kanban API with workpanels, team rooms and boards

// @host      localhost:8000
// @BasePath  /api/workpanels

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "workpanel-api/docs" // Swagger docs import

	"workpanel-api/internal/client"
	"workpanel-api/internal/config"
	"workpanel-api/internal/database"
	"workpanel-api/internal/job"
	"workpanel-api/internal/metrics"
	"workpanel-api/internal/repository"
	"workpanel-api/internal/router"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Workpanel API",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
	)

	// The pod must come up even while the database is unreachable, so a
	// failed connect falls back to background retries.
	dbConfig := database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	db, err := database.New(dbConfig)
	if err != nil {
		logger.Warn("Failed to connect to database on startup, will retry in background",
			zap.Error(err))
		database.NewAsync(dbConfig, 5*time.Second, logger)
		db = database.GetDB()
	} else {
		database.SetDB(db)
		logger.Info("Database connected successfully")

		if err := database.SafeAutoMigrate(db, logger); err != nil {
			logger.Warn("Failed to run database migrations", zap.Error(err))
		} else {
			logger.Info("Database migrations completed")
		}
	}

	redisClient, err := database.NewRedis(cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis unavailable, unread counts fall back to the database", zap.Error(err))
		redisClient = nil
	}

	m := metrics.NewWithLogger(logger)
	logger.Info("Metrics initialized")

	if db != nil {
		database.RegisterMetricsCallbacks(db, m)
		collector := metrics.NewBusinessMetricsCollector(db, m, logger)
		collector.Start()
		defer collector.Stop()
	}

	var s3Client client.S3ClientInterface
	if cfg.S3.Bucket != "" && cfg.S3.Region != "" {
		s3, err := client.NewS3Client(&cfg.S3)
		if err != nil {
			logger.Warn("Failed to initialize S3 client, attachment features may be limited", zap.Error(err))
		} else {
			s3Client = s3
			logger.Info("S3 client initialized",
				zap.String("bucket", cfg.S3.Bucket),
				zap.String("region", cfg.S3.Region),
			)
		}
	} else {
		logger.Warn("S3 configuration incomplete, attachment features disabled")
	}

	var suggestClient client.SuggestClient
	if cfg.Suggest.BaseURL != "" {
		suggestClient = client.NewSuggestClient(cfg.Suggest.BaseURL, cfg.Suggest.APIKey, cfg.Suggest.Timeout, logger, m)
		logger.Info("Suggest client initialized", zap.String("base_url", cfg.Suggest.BaseURL))
	} else {
		suggestClient = client.NewNoOpSuggestClient()
		logger.Info("Suggest service not configured, tag suggestions disabled")
	}

	var userClient client.UserClient
	if cfg.UserService.BaseURL != "" {
		userClient = client.NewUserClient(cfg.UserService.BaseURL, logger)
		logger.Info("User client initialized", zap.String("base_url", cfg.UserService.BaseURL))
	} else {
		userClient = client.NewNoOpUserClient()
		logger.Info("User service not configured, invite-time user lookups disabled")
	}

	// Nightly sweep for abandoned uploads and parked storage objects
	cronRunner := cron.New()
	if db != nil && s3Client != nil {
		cleanupJob := job.NewCleanupJob(repository.NewAttachmentRepository(db), s3Client, logger)
		if _, err := cronRunner.AddJob("0 3 * * *", cleanupJob); err != nil {
			logger.Warn("Failed to schedule cleanup job", zap.Error(err))
		} else {
			cronRunner.Start()
			defer cronRunner.Stop()
			logger.Info("Cleanup job scheduled")
		}
	}

	r := router.Setup(router.Config{
		DB:            db,
		Logger:        logger,
		JWTSecret:     cfg.JWT.Secret,
		BasePath:      cfg.Server.BasePath,
		Metrics:       m,
		Redis:         redisClient,
		S3Client:      s3Client,
		SuggestClient: suggestClient,
		UserClient:    userClient,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("Workpanel API started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s%s/swagger/index.html", cfg.Server.Port, cfg.Server.BasePath)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
