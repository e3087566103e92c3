package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	chatapp "study_portal_service/internal/chat/app"
	chatrepo "study_portal_service/internal/chat/repository"
	chatrouter "study_portal_service/internal/chat/router"
	socialapp "study_portal_service/internal/social/app"
	socialrepo "study_portal_service/internal/social/repository"
	socialrouter "study_portal_service/internal/social/router"
	"study_portal_service/pkg/config"
	"study_portal_service/pkg/database"
	"study_portal_service/pkg/logger"
	"study_portal_service/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/swagger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// @title Study Portal Chat Service API
// @version 1.0
// @description Realtime messaging gateway and social feed for the study portal
// @BasePath /
func main() {
	logger.Log = logger.Initialize(config.EnvConfig.ChatService, config.EnvConfig.ChatServiceLogPath)
	cfg := config.LoadConfig[config.Portal](config.EnvConfig.ChatService, config.EnvConfig.ChatServiceYAMLPath)

	// the login service mints tokens with the same shared secret
	token.SetSecret(cfg.JWTSecret)

	// 1. Mongo connection (messages and posts)
	ctx := context.Background()
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%d", cfg.Mongo.User, cfg.Mongo.Password, cfg.Mongo.Host, cfg.Mongo.Port)
	mongo, err := database.NewMongoDB(ctx,
		database.Connection{
			ConnectStr:    uri,
			RetryCount:    cfg.Mongo.RetryCount,
			RetryInterval: time.Duration(cfg.Mongo.RetryInterval) * time.Second,
		},
		cfg.Mongo.Database)
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to mongoDB database after retries",
			zap.String("address", fmt.Sprintf("[%s]", uri)),
			zap.Error(err),
		)
	}
	defer mongo.Close(ctx)

	// 2. Redis connection (visit tracking)
	redisClient, err := database.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}
	defer redisClient.Close()

	// 3. Kafka event stream, optional
	var events *kafka.Writer
	if len(cfg.Kafka.Brokers) > 0 {
		events, err = database.NewKafkaWriterWithRetry(database.KafkaConnection{
			Brokers:       cfg.Kafka.Brokers,
			Topic:         cfg.Kafka.Topic,
			RetryCount:    cfg.Kafka.RetryCount,
			RetryInterval: time.Duration(cfg.Kafka.RetryInterval),
		})
		if err != nil {
			logger.Log.Fatal(fmt.Sprintf("connect kafka err : %v", err))
		}
		defer events.Close()
	}

	// 4. repositories
	msgRepo := chatrepo.NewMongoMessageRepository(mongo.Database)
	postRepo := socialrepo.NewMongoPostRepository(mongo.Database)
	visitRepo := socialrepo.NewRedisVisitRepository(redisClient)

	// 5. use cases
	presence := chatapp.NewPresenceHub()
	var eventWriter chatapp.ChatEventWriter
	if events != nil {
		eventWriter = events
	}
	sendMessageUC := chatapp.NewSendMessageUseCase(msgRepo, presence, eventWriter)
	queryUC := chatapp.NewChatQueryUseCase(msgRepo)
	postUC := socialapp.NewPostUseCase(postRepo)
	activityUC := socialapp.NewActivityUseCase(visitRepo)

	// 6. Fiber app
	r := fiber.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowOrigins, ","),
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
	}))

	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.ChatServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	r.Get("/swagger/*", swagger.HandlerDefault)

	chatrouter.RegisterRoutes(r, chatapp.NewChatWebsocketHandler(presence, sendMessageUC), chatapp.NewChatQueryHandler(queryUC))
	socialrouter.RegisterRoutes(r, socialapp.NewPostHandler(postUC, activityUC))

	port := ":" + cfg.Port
	log.Printf("Chat Service listening on %s", port)
	if err := r.Listen(port); err != nil {
		log.Fatalf("Failed to start Fiber: %v", err)
	}
}
