// cmd/server/main.go - Blog Platform Backend Server
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Внутренние пакеты проекта
	"blog-platform/internal/config"
	"blog-platform/internal/database"
	"blog-platform/internal/handlers"
	"blog-platform/internal/middleware"
	"blog-platform/internal/services"
	"blog-platform/internal/websocket"
	"blog-platform/pkg/auth"

	// Внешние зависимости
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	// Глобальная переменная для отслеживания времени запуска сервера
	serverStartTime = time.Now()

	// Версия приложения
	appVersion = "1.0.0"
	buildTime  = "unknown"
	gitCommit  = "unknown"
)

func main() {
	// Загружаем конфигурацию (.env подхватывается внутри Load)
	cfg := config.Load()

	// Настраиваем логирование
	setupLogging(cfg)

	// Выводим информацию о запуске
	printStartupInfo(cfg)

	// Подключаемся к MongoDB
	log.Println("🔌 Connecting to MongoDB...")
	db, err := database.NewMongoDB(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("⚠️  Error disconnecting from MongoDB: %v", err)
		}
	}()

	// Создаем индексы в MongoDB
	indexCtx, indexCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.CreateIndexes(indexCtx); err != nil {
		log.Printf("⚠️  Warning: Failed to create some indexes: %v", err)
	}
	indexCancel()

	// Инициализируем JWT менеджер
	jwtManager := auth.NewJWTManager(
		cfg.JWTSecret,
		time.Duration(cfg.JWTExpiration)*time.Hour,
	)

	// Коллекции MongoDB
	userCollection := db.Database.Collection("users")
	blogCollection := db.Database.Collection("blogs")

	// WebSocket Hub для real-time доставки уведомлений
	wsHub := websocket.NewHub()
	go wsHub.Run()
	defer wsHub.Shutdown()

	// Сервисы
	notificationService := services.NewNotificationService(userCollection, wsHub)
	emailService := services.NewEmailService(cfg)

	// Хендлеры
	authHandler := handlers.NewAuthHandler(userCollection, jwtManager, emailService)
	blogHandler := handlers.NewBlogHandler(blogCollection, userCollection, notificationService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Rate limiter для auth-маршрутов; горутину очистки
	// останавливаем вместе с сервером
	var limiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimitRequests, time.Duration(cfg.RateLimitWindow)*time.Second)
		defer limiter.Stop()
	}

	// Роутер
	router := setupRouter(cfg, jwtManager, wsHub, limiter, authHandler, blogHandler, notificationHandler)

	// HTTP сервер
	srv := &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:        router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("🚀 Blog Platform Backend Server v%s starting...", appVersion)
		log.Printf("🌐 Server running on http://%s:%s", cfg.Host, cfg.Port)
		log.Printf("📡 WebSocket endpoint: ws://%s:%s/ws", cfg.Host, cfg.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	// Graceful shutdown с таймаутом
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️  Server forced to shutdown: %v", err)
	} else {
		log.Println("✅ Server gracefully stopped")
	}

	log.Println("👋 Blog Platform Backend exited")
}

// setupLogging настраивает логирование в зависимости от окружения
func setupLogging(cfg *config.Config) {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
		// Добавляем время и файл к логам в development
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// printStartupInfo выводит информацию о запуске сервера
func printStartupInfo(cfg *config.Config) {
	log.Println("================================================================================")
	log.Printf("📝 Blog Platform Backend Server")
	log.Printf("📌 Version: %s | Build: %s | Commit: %s", appVersion, buildTime, gitCommit)
	log.Printf("🌍 Environment: %s", cfg.Environment)
	log.Printf("🔧 Configuration:")
	log.Printf("   • Host: %s", cfg.Host)
	log.Printf("   • Port: %s", cfg.Port)
	log.Printf("   • Database: %s", cfg.DatabaseName)
	log.Printf("   • CORS Origins: %v", cfg.AllowedOrigins)
	if cfg.RateLimitEnabled {
		log.Printf("   • Rate Limit: %d requests per %ds", cfg.RateLimitRequests, cfg.RateLimitWindow)
	}
	log.Println("================================================================================")
}

// setupRouter настраивает все маршруты
func setupRouter(
	cfg *config.Config,
	jwtManager *auth.JWTManager,
	wsHub *websocket.Hub,
	limiter *middleware.RateLimiter,
	authHandler *handlers.AuthHandler,
	blogHandler *handlers.BlogHandler,
	notificationHandler *handlers.NotificationHandler,
) *gin.Engine {
	router := gin.New()

	// Глобальные middleware
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// CORS настройки для поддержки frontend
	corsConfig := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// WebSocket endpoint - до остальных маршрутов
	router.GET("/ws", wsHub.ServeWS(jwtManager))

	// Health check и метаданные
	setupHealthRoutes(router, wsHub)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Авторизация и регистрация; rate limit закрывает
		// перебор паролей и рассылку писем сброса
		authGroup := v1.Group("/auth")
		if limiter != nil {
			authGroup.Use(limiter.RateLimit())
		}
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password/:token", authHandler.ResetPassword)
		authGroup.PUT("/edit-profile", middleware.AuthMiddleware(jwtManager), authHandler.EditProfile)

		// Блоги
		blogs := v1.Group("/blogs")
		{
			// Публичные
			blogs.GET("/getallblogs", blogHandler.GetAllBlogs)
			blogs.GET("/getblogbyid/:id", middleware.OptionalAuthMiddleware(jwtManager), blogHandler.GetBlogByID)

			// Защищенные (требуют JWT)
			protected := blogs.Group("", middleware.AuthMiddleware(jwtManager))
			protected.POST("/createblog", blogHandler.CreateBlog)
			protected.GET("/myblogs", blogHandler.GetMyBlogs)
			protected.PUT("/updateblog/:id", blogHandler.UpdateBlog)
			protected.DELETE("/deleteblog/:id", blogHandler.DeleteBlog)
			protected.POST("/like/:id", blogHandler.ToggleLike)
			protected.POST("/comment/:id", blogHandler.AddComment)

			// Админские (требуют роль admin)
			admin := blogs.Group("/admin", middleware.AuthMiddleware(jwtManager), middleware.AdminMiddleware())
			admin.GET("/all", blogHandler.GetAllBlogsForAdmin)
			admin.DELETE("/delete-comment/:blogId/:commentId", blogHandler.DeleteCommentByAdmin)
		}

		// Пользователь: профиль и уведомления
		users := v1.Group("/users", middleware.AuthMiddleware(jwtManager))
		users.GET("/profile", authHandler.GetProfile)
		users.GET("/notifications", notificationHandler.GetNotifications)
		users.GET("/notifications/unread-count", notificationHandler.GetUnreadCount)
		users.PUT("/notifications/:id", notificationHandler.MarkNotificationRead)
	}

	// 404 handler для неизвестных маршрутов
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Endpoint not found",
			"path":    c.Request.URL.Path,
		})
	})

	// 405 handler для неподдерживаемых методов
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"success": false,
			"message": "Method not allowed",
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
		})
	})

	return router
}

// setupHealthRoutes настраивает маршруты health check
func setupHealthRoutes(router *gin.Engine, wsHub *websocket.Hub) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"uptime":    time.Since(serverStartTime).String(),
			"version":   appVersion,
			"build": gin.H{
				"time":   buildTime,
				"commit": gitCommit,
			},
			"stats": gin.H{
				"websocket_connections": wsHub.ConnectionsCount(),
			},
		})
	})

	// Readiness check для Kubernetes
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ready": true})
	})

	// Liveness check для Kubernetes
	router.GET("/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"alive": true})
	})
}
