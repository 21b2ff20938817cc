package main

import (
	"carhive/internal/app"
	"carhive/internal/model"
	"carhive/pkg/cache"
	"carhive/pkg/config"
	"carhive/pkg/database"
	"carhive/pkg/logger"
	"carhive/pkg/queue"
	"carhive/pkg/s3"
)

// @title           CarHive API
// @version         1.0
// @description     Social feed for car enthusiasts: posts, profiles, likes, saves and view history

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:4000
// @BasePath  /api

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New()

	db, err := database.New(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	// Postgres schema is managed by goose (cmd/migrate). The sqlite fallback
	// has no migration story, so let gorm create it.
	if cfg.PostgresDSN() == "" {
		if err := db.AutoMigrate(
			&model.UserModel{},
			&model.PostModel{},
			&model.PostImageModel{},
			&model.LikeModel{},
			&model.SaveModel{},
			&model.PostViewModel{},
			&model.UserViewModel{},
			&model.BannerModel{},
			&model.NotificationModel{},
		); err != nil {
			log.Error("Failed to migrate sqlite schema: %v", err)
			panic(err)
		}
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Redis unavailable, caching and shared rate limits disabled: %v", err)
		redisClient = nil
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("RabbitMQ unavailable, engagement events will not be published: %v", err)
		queueClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Warn("S3 unavailable, image uploads disabled: %v", err)
		s3Client = nil
	}

	app.Run(cfg, log, db, s3Client, queueClient, redisClient)
}
