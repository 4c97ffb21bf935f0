package main

import (
	"context"
	"log"
	"os"

	"auth"
	authModels "auth/models"
	authUtils "auth/utils"
	"core"

	"github.com/pablozamit/elo-pool/config"
	_ "github.com/pablozamit/elo-pool/docs" // Swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Elo Pool Club API
// @version         1.0
// @description     Club de billar: ranking Elo, confirmación de partidos y logros

// @contact.name   API Support

// @license.name  MIT
// @license.url   http://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.ConnectDatabase()

	bootstrapAdmin()

	r := gin.Default()
	r.Use(cors.New(corsConfig()))

	authModule := auth.NewModule(config.DB)
	authModule.SetupRoutes(r)

	coreModule := core.NewModule(config.DB)
	coreModule.SetupRoutes(r)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := coreModule.Start(ctx); err != nil {
		log.Fatalf("Failed to start background services: %v", err)
	}
	defer coreModule.Stop()

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/health", healthHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	r.Run(":" + port)
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.AllowOrigins = []string{origins}
	} else {
		cfg.AllowAllOrigins = true
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	return cfg
}

// bootstrapAdmin makes sure at least one admin account exists so a fresh
// deployment can be managed. Credentials come from ADMIN_USERNAME /
// ADMIN_PASSWORD, defaulting to admin/adminpassword.
func bootstrapAdmin() {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}

	var count int64
	config.DB.Model(&authModels.User{}).Where("is_admin = ?", true).Count(&count)
	if count > 0 {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "adminpassword"
		log.Println("WARNING: using default admin password, set ADMIN_PASSWORD")
	}

	hashed, err := authUtils.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := authModels.User{
		Username:  username,
		Password:  hashed,
		EloRating: 1200,
		IsAdmin:   true,
		IsActive:  true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		log.Printf("Failed to bootstrap admin account: %v", err)
		return
	}
	log.Printf("Bootstrapped admin account %q", username)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Message  string `json:"message" example:"Server is running"`
	Database string `json:"database" example:"connected"`
}

// @Summary Health Check
// @Description Check if the server is running and database is connected
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func healthHandler(c *gin.Context) {
	status := "connected"
	if sqlDB, err := config.DB.DB(); err != nil || sqlDB.Ping() != nil {
		status = "unreachable"
	}
	c.JSON(200, HealthResponse{
		Message:  "Server is running",
		Database: status,
	})
}
