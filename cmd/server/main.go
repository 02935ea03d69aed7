package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/postboard/postboard/internal/config"
	"github.com/postboard/postboard/internal/database"
	"github.com/postboard/postboard/internal/handler"
	"github.com/postboard/postboard/internal/middleware"
	"github.com/postboard/postboard/internal/repository"
	"github.com/postboard/postboard/internal/service"
	"github.com/postboard/postboard/pkg/logger"
)

func main() {
	cfg := config.Load()
	log.Println("Config loaded successfully")

	if err := logger.Init(cfg.Environment != "production"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	database.Connect(cfg)
	database.Migrate()

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.DB)
	postRepo := repository.NewPostRepository(database.DB)
	likeRepo := repository.NewLikeRepository(database.DB)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry, cfg.Environment)
	postService := service.NewPostService(postRepo, likeRepo, userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService)

	// Setup Gin router
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.HSTSMiddleware(authService.IsProduction()))

	// Public routes
	router.POST("/signup", authHandler.Signup)
	router.POST("/login", authHandler.Login)

	// Feed routes: public, but a valid token attaches the caller's identity
	router.GET("/posts", middleware.OptionalAuthMiddleware(cfg.JWTSecret), postHandler.ListPosts)
	router.GET("/posts/:username", middleware.OptionalAuthMiddleware(cfg.JWTSecret), postHandler.ListUserPosts)

	// Protected routes (require JWT)
	auth := middleware.AuthMiddleware(cfg.JWTSecret)
	router.GET("/me", auth, authHandler.Me)
	router.PATCH("/me", auth, authHandler.UpdateMe)
	router.DELETE("/me", auth, authHandler.DeleteMe)
	router.POST("/posts", auth, postHandler.CreatePost)
	router.PATCH("/posts/:id", auth, postHandler.UpdatePost)
	router.POST("/posts/:postId/like", auth, postHandler.LikePost)
	router.DELETE("/posts/:postId/like", auth, postHandler.UnlikePost)

	// Start server
	log.Printf("Server starting on %s", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
