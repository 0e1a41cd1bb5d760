package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dbadapter "blogify/internal/adapters/database"
	"blogify/internal/adapters/httpapi"
	redisadapter "blogify/internal/adapters/redis"
	"blogify/internal/config"
	commentapp "blogify/internal/core/comment/service"
	likeapp "blogify/internal/core/like/service"
	postapp "blogify/internal/core/post/service"
	userapp "blogify/internal/core/user/service"
	postPort "blogify/internal/ports/post"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.InitLogger(config.EnvDevelopment).Fatal("Failed to load config", zap.Error(err))
	}
	logger := config.InitLogger(cfg.AppEnv)
	defer func() { _ = logger.Sync() }()

	if cfg.AppEnv == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	flushSentry, err := config.InitSentry(cfg)
	if err != nil {
		logger.Fatal("Sentry init failed", zap.Error(err))
	}
	defer flushSentry()

	shutdownTracing, err := config.InitTracing(ctx, cfg)
	if err != nil {
		logger.Fatal("Tracing init failed", zap.Error(err))
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal("Database init failed", zap.Error(err))
	}

	redisClient, err := config.InitRedis(ctx, cfg)
	if err != nil {
		logger.Fatal("Redis init failed", zap.Error(err))
	}

	var cache postPort.Cache
	if redisClient != nil {
		cache = redisadapter.NewPostCacheRedis(redisClient, cfg.CacheTTL, logger)
	}

	userRepo := dbadapter.NewUserRepositoryDatabase(db)
	postRepo := dbadapter.NewPostRepositoryDatabase(db)
	likeRepo := dbadapter.NewLikeRepositoryDatabase(db)
	commentRepo := dbadapter.NewCommentRepositoryDatabase(db)

	userSvc := userapp.NewUserService(userRepo, []byte(cfg.JWTSecret), cfg.AppName, cfg.JWTTTL, logger)
	postSvc := postapp.NewPostService(postRepo, cache, logger)
	likeSvc := likeapp.NewLikeService(likeRepo, cache, logger)
	commentSvc := commentapp.NewCommentService(commentRepo, postRepo, cache, logger)

	r := httpapi.SetupRoutes(userSvc, postSvc, likeSvc, commentSvc, httpapi.Options{
		Logger:      logger,
		Health:      dbadapter.NewHealthCheck(db),
		ServiceName: cfg.AppName,
		Tracing:     cfg.OTLPEndpoint != "",
		CORSOrigins: cfg.AllowedOrigins(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("App is running...", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("Tracer shutdown failed", zap.Error(err))
	}
	closeResources(logger, db)
}

// closeResources releases Redis and the database connection pool.
func closeResources(logger *zap.Logger, db *gorm.DB) {
	if config.RedisClient != nil {
		if err := config.RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
	if err := config.CloseDB(db); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	}
}
