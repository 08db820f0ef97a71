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
	notificationHTTP "nutrigram/services/notification/internal/controller/http"
	"nutrigram/services/notification/internal/repo/persistent"
	"nutrigram/services/notification/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize Repository
	notificationRepo := persistent.NewNotificationRepository(db)

	// Initialize UseCase
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, redisClient, log)

	// Initialize HTTP handlers
	notificationHandler := notificationHTTP.NewNotificationHandler(notificationUseCase, log)

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
	// Protected routes - require authentication
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.POST("/notifications/:notification_id/read", notificationHandler.MarkRead)
		protected.POST("/notifications/read-all", notificationHandler.MarkAllRead)
	}
	// Internal routes - no auth required (for internal service calls)
	{
		api.POST("/notifications/send", notificationHandler.SendNotification)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start consuming notification tasks in a goroutine
	if queueClient != nil {
		go func() {
			log.Info("Starting notification queue consumer...")

			err := queueClient.ConsumeNotificationTasks(func(task map[string]interface{}) error {
				notificationType, _ := task["type"].(string)

				switch notificationType {
				case "like":
					return notificationUseCase.HandleLikeNotification(task)
				case "comment":
					return notificationUseCase.HandleCommentNotification(task)
				case "follow":
					return notificationUseCase.HandleFollowNotification(task)
				default:
					// Drop instead of nack: requeueing an unknown type would loop forever
					log.Error("[NOTIFICATION HANDLER] Unknown notification type: %s, task=%+v", notificationType, task)
					return nil
				}
			})
			if err != nil {
				log.Error("Failed to start queue consumer: %v", err)
			}
		}()
	} else {
		log.Warn("Queue client unavailable, notification consumer disabled")
	}

	// Start server in a goroutine
	go func() {
		log.Info("Notification service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down notification service...")

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

	log.Info("Notification service exited")
}
