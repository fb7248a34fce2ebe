package main

import (
	"log"
	"strings"

	"blogapi/cache"
	"blogapi/config"
	"blogapi/controllers"
	"blogapi/database"
	"blogapi/middleware"
	"blogapi/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "blogapi/docs"
)

// @title Blog API
// @version 1.0
// @description A blogging API with JWT authentication, cached post reads and soft-deletable posts

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	cfg := config.Load()

	db := database.Connect(cfg)
	database.Migrate(db)

	postCache := newCache(cfg)

	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORSAllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
	}))
	r.Use(middleware.Logger())

	authController := controllers.NewAuthController(db)
	postController := controllers.NewPostController(db, postCache, cfg)
	commentController := controllers.NewCommentController(db)

	routes.SetupRoutes(r, authController, postController, commentController)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func newCache(cfg *config.Config) cache.Cache {
	if cfg.CacheDriver == "redis" {
		return cache.NewRedis(cfg.RedisAddr(), cfg.RedisPassword)
	}
	return cache.NewMemory()
}
