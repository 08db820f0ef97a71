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
	"nutrigram/pkg/s3"
	postHTTP "nutrigram/services/post/internal/controller/http"
	"nutrigram/services/post/internal/repo/persistent"
	"nutrigram/services/post/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client, s3Client *s3.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize repositories
	postRepo := persistent.NewPostRepository(db)
	commentRepo := persistent.NewCommentRepository(db)

	// Initialize use cases
	var publisher usecase.NotificationPublisher
	if queueClient != nil {
		publisher = queueClient
	}
	postUseCase := usecase.NewPostUseCase(postRepo, s3Client, redisClient, log)
	commentUseCase := usecase.NewCommentUseCase(commentRepo, postRepo, publisher, log)

	// Initialize HTTP handlers
	postHandler := postHTTP.NewPostHandler(postUseCase, log)
	commentHandler := postHTTP.NewCommentHandler(commentUseCase, log)

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
		protected.POST("/posts", postHandler.CreatePost)
		protected.DELETE("/posts/:post_id", postHandler.DeletePost)
		protected.POST("/posts/:post_id/comments", commentHandler.AddComment)
		protected.DELETE("/comments/:comment_id", commentHandler.DeleteComment)
	}

	// Public routes
	{
		api.GET("/posts/:post_id", postHandler.GetPost)
		api.GET("/posts/:post_id/comments", commentHandler.GetComments)
		api.GET("/users/:user_id/posts", postHandler.ListUserPosts)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Post service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down post service...")

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

	log.Info("Post service exited")
}
