package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/campushq/course-assistant-backend/internal/clients/openai"
	"github.com/campushq/course-assistant-backend/internal/db"
	"github.com/campushq/course-assistant-backend/internal/handlers"
	"github.com/campushq/course-assistant-backend/internal/middleware"
	"github.com/campushq/course-assistant-backend/internal/observability"
	"github.com/campushq/course-assistant-backend/internal/platform/logger"
	"github.com/campushq/course-assistant-backend/internal/repos"
	"github.com/campushq/course-assistant-backend/internal/server"
	"github.com/campushq/course-assistant-backend/internal/services"
	"github.com/campushq/course-assistant-backend/internal/utils"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	shutdownOtel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "course-assistant",
		Environment: logMode,
	})
	if shutdownOtel != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOtel(ctx)
		}()
	}

	// Env
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	port := utils.GetEnv("PORT", "8080", log)
	corsOrigins := utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	courseRepo := repos.NewCourseRepo(thePG, log)
	enrollmentRepo := repos.NewEnrollmentRepo(thePG, log)
	materialRepo := repos.NewMaterialRepo(thePG, log)
	studentQueryRepo := repos.NewStudentQueryRepo(thePG, log)
	embeddingRepo := repos.NewEmbeddingRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	bucketService, err := services.NewBucketService(log)
	if err != nil {
		log.Error("Could not init BucketService", "error", err)
		os.Exit(1)
	}
	openaiClient, err := openai.NewClient(log)
	if err != nil {
		log.Error("Could not init OpenAIClient", "error", err)
		os.Exit(1)
	}
	authService := services.NewAuthService(log, jwtSecretKey)
	retrievalService := services.NewRetrievalService(log, openaiClient, embeddingRepo)
	chatService := services.NewChatService(thePG, log, retrievalService, openaiClient, studentQueryRepo)
	courseService := services.NewCourseService(thePG, log, courseRepo, enrollmentRepo)
	studentService := services.NewStudentService(thePG, log, courseRepo, enrollmentRepo, materialRepo, studentQueryRepo)
	materialService := services.NewMaterialService(thePG, log, courseRepo, materialRepo, embeddingRepo, bucketService, openaiClient)
	provisionService := services.NewProvisionService(log, postgresService, bucketService)

	// Handlers
	log.Info("Setting up Handlers from main...")
	searchHandler := handlers.NewSearchHandler(log, retrievalService)
	chatHandler := handlers.NewChatHandler(log, chatService)
	courseHandler := handlers.NewCourseHandler(log, courseService)
	studentHandler := handlers.NewStudentHandler(log, studentService)
	materialHandler := handlers.NewMaterialHandler(log, materialService)
	storageHandler := handlers.NewStorageHandler(log, bucketService)
	adminHandler := handlers.NewAdminHandler(log, provisionService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		ServiceName:     "course-assistant",
		AllowOrigins:    strings.Split(corsOrigins, ","),
		AuthMiddleware:  authMiddleware,
		SearchHandler:   searchHandler,
		ChatHandler:     chatHandler,
		CourseHandler:   courseHandler,
		StudentHandler:  studentHandler,
		MaterialHandler: materialHandler,
		StorageHandler:  storageHandler,
		AdminHandler:    adminHandler,
	})

	log.Info("Starting server...", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}
