package api

import (
	"buildcost/docs"
	"buildcost/internal/app/config"
	"buildcost/internal/app/dsn"
	"buildcost/internal/app/handler"
	"buildcost/internal/app/middleware"
	"buildcost/internal/app/procurement"
	"buildcost/internal/app/redis"
	"buildcost/internal/app/repository"
	"buildcost/internal/app/repository/memory"
	"buildcost/internal/app/storage"
	"buildcost/internal/pkg"
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func StartServer() error {
	logrus.Info("Starting server")

	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	var (
		opts      []procurement.Option
		blacklist middleware.Blacklist
		revoker   handler.Revoker
	)

	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		opts = append(opts, procurement.WithStatsCache(redisClient))
		blacklist = redisClient
		revoker = redisClient
		logrus.Info("redis connected: JWT blacklist and statistics cache enabled")
	} else {
		logrus.Warn("REDIS_HOST is not set: JWT blacklist and statistics cache disabled")
	}

	if cfg.MinIO.Enabled() {
		minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
		if err != nil {
			return fmt.Errorf("minio: %w", err)
		}
		opts = append(opts, procurement.WithReceiptStorage(minioClient))
		logrus.Infof("minio connected, bucket %s", cfg.MinIO.Bucket)
	} else {
		logrus.Warn("MINIO_ENDPOINT is not set: receipt upload disabled")
	}

	service := procurement.NewService(store, opts...)
	h := handler.NewAPIHandler(service)
	auth := middleware.NewAuthMiddleware(blacklist, cfg)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	docs.SwaggerInfo.Host = fmt.Sprintf("%s:%d", cfg.ServiceHost, cfg.ServicePort)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	app := pkg.NewApp(cfg, router, h, handler.NewAuthHandler(revoker, cfg), auth)
	app.RunApp()
	return nil
}

func newStore(cfg *config.Config) (procurement.Store, error) {
	if cfg.Storage == config.StorageMemory {
		logrus.Warn("using in-memory storage, data is lost on restart")
		return memory.NewStore(), nil
	}

	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		return nil, fmt.Errorf("DB_HOST is not set. Check your .env file")
	}
	repo, err := repository.New(dsnStr)
	if err != nil {
		return nil, fmt.Errorf("repository: %w", err)
	}
	return repo, nil
}
