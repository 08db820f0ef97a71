package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "nutrigram/docs"
	"nutrigram/pkg/config"
	"nutrigram/pkg/jwt"
	"nutrigram/pkg/logger"
	"nutrigram/pkg/middleware"
	"nutrigram/pkg/queue"
	socialHTTP "nutrigram/services/social/internal/controller/http"
	"nutrigram/services/social/internal/repo/persistent"
	"nutrigram/services/social/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize repositories
	likeRepo := persistent.NewLikeRepository(db)
	followRepo := persistent.NewFollowRepository(db)
	userRepo := persistent.NewUserRepository(db)
	postRepo := persistent.NewPostRepository(db)

	// Initialize use cases
	var publisher usecase.NotificationPublisher
	if queueClient != nil {
		publisher = queueClient
	}
	likeUseCase := usecase.NewLikeUseCase(likeRepo, postRepo, redisClient, publisher, log)
	followUseCase := usecase.NewFollowUseCase(followRepo, userRepo, publisher, log)

	// Initialize HTTP handlers
	likeHandler := socialHTTP.NewLikeHandler(likeUseCase, log)
	followHandler := socialHTTP.NewFollowHandler(followUseCase, log)

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

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.POST("/social/posts/:post_id/like", likeHandler.ToggleLike)
		protected.GET("/social/posts/:post_id/liked", likeHandler.IsLiked)
		protected.POST("/social/users/:user_id/follow", followHandler.ToggleFollow)
		protected.GET("/social/users/:user_id/following", followHandler.IsFollowing)
	}

	// Public routes
	{
		api.GET("/social/posts/:post_id/likes", likeHandler.GetLikeCount)
		api.GET("/social/users/:user_id/followers", followHandler.GetFollowers)
		api.GET("/social/users/:user_id/follows", followHandler.GetFollowing)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Social service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down social service...")

	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection if it was initialized
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection if it was initialized
	if queueClient != nil {
		queueClient.Close()
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Social service exited")
}
