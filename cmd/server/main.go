package main

import (
	"log"

	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/cinerama/cinerama/config"
	"github.com/cinerama/cinerama/internal/app"
	"github.com/cinerama/cinerama/internal/cache"
	"github.com/cinerama/cinerama/internal/handler"
	"github.com/cinerama/cinerama/internal/mq"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	var redisCache *cache.RedisCache
	if cfg.CacheURL != "" {
		redisCache, err = cache.NewRedisCache(cfg.CacheURL)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
	}

	var mqConn *amqp.Connection
	var publisher *mq.Publisher
	if cfg.MQURL != "" {
		mqConn, err = mq.NewMQConn(cfg.MQURL)
		if err != nil {
			logger.Fatal("failed to connect to rabbitmq", zap.Error(err))
		}
		publisher, err = mq.NewPublisher(mqConn)
		if err != nil {
			logger.Fatal("failed to open publisher channel", zap.Error(err))
		}
	}

	application := app.New(cfg, redisCache, mqConn, publisher, logger)
	if err := application.Init(); err != nil {
		logger.Fatal("failed to init app", zap.Error(err))
	}
	defer application.Close()

	r := gin.Default()
	handler.RegisterRoutes(r, application)

	logger.Info("server listening",
		zap.String("addr", cfg.Addr),
		zap.Bool("cache", redisCache != nil),
		zap.Bool("mq", mqConn != nil))
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
