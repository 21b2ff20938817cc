package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	carhiveHTTP "carhive/internal/controller/http"
	"carhive/internal/repo/persistent"
	"carhive/internal/usecase"
	"carhive/pkg/config"
	"carhive/pkg/logger"
	"carhive/pkg/middleware"
	"carhive/pkg/queue"
	"carhive/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "carhive/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, queueClient *queue.Client, redisClient *redis.Client) {
	// Initialize repositories
	postRepo := persistent.NewPostRepository(db)
	userRepo := persistent.NewUserRepository(db)
	engagementRepo := persistent.NewEngagementRepository(db)
	otherRepo := persistent.NewOtherRepository(db)

	// Initialize use cases
	postUseCase := usecase.NewPostUseCase(postRepo, s3Client, redisClient, log)
	userUseCase := usecase.NewUserUseCase(userRepo, log)
	engagementUseCase := usecase.NewEngagementUseCase(engagementRepo, postRepo, userRepo, otherRepo, queueClient, redisClient, log)
	otherUseCase := usecase.NewOtherUseCase(otherRepo)

	// Initialize HTTP handlers
	postHandler := carhiveHTTP.NewPostHandler(postUseCase, engagementUseCase, log)
	userHandler := carhiveHTTP.NewUserHandler(userUseCase, engagementUseCase, log)
	otherHandler := carhiveHTTP.NewOtherHandler(otherUseCase, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))
	r.Use(middleware.SecurityHeaders())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(redisClient, cfg.RateLimitPerMinute, time.Minute))

	posts := api.Group("/posts")
	{
		posts.GET("", postHandler.GetAllPosts)
		posts.GET("/popular", postHandler.GetPopularPosts)
		posts.GET("/search", postHandler.GetSearchPosts)
		posts.GET("/filter", postHandler.GetFilteredPost)
		posts.GET("/saved/:userId", postHandler.GetSavedPosts)
		posts.GET("/viewed/:userId", postHandler.GetViewedPosts)
		posts.GET("/user/:userId", postHandler.GetPostsByUserID)
		posts.GET("/:postId", postHandler.GetPostByID)
		posts.POST("", postHandler.CreatePost)
		posts.PUT("/:postId", postHandler.UpdatePost)
		posts.DELETE("/:postId", postHandler.DeletePost)
		posts.PUT("/:postId/like", postHandler.UpdateLike)
		posts.PUT("/:postId/save", postHandler.UpdateSave)
		posts.PUT("/:postId/viewed", postHandler.UpdateViewedPosts)
	}

	users := api.Group("/users")
	{
		users.GET("", userHandler.GetAllUsers)
		users.GET("/search", userHandler.GetSearchUsers)
		users.GET("/viewed/:userId", userHandler.GetViewedUsers)
		users.GET("/:userId", userHandler.GetUserByID)
		users.POST("", userHandler.CreateUser)
		users.PUT("/viewed/:otherId", userHandler.UpdateViewedUsers)
		users.PUT("/:userId", userHandler.UpdateUser)
		users.DELETE("/:userId", userHandler.DeleteUser)
	}

	others := api.Group("/others")
	{
		others.GET("/banners", otherHandler.GetBanners)
		others.GET("/notifications", otherHandler.GetNotifications)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("CarHive API starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down CarHive API...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if queueClient != nil {
		queueClient.Close()
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("CarHive API exited")
}
