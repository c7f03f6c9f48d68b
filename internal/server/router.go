package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/campushq/course-assistant-backend/internal/handlers"
	"github.com/campushq/course-assistant-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName     string
	AllowOrigins    []string
	AuthMiddleware  *middleware.AuthMiddleware
	SearchHandler   *handlers.SearchHandler
	ChatHandler     *handlers.ChatHandler
	CourseHandler   *handlers.CourseHandler
	StudentHandler  *handlers.StudentHandler
	MaterialHandler *handlers.MaterialHandler
	StorageHandler  *handlers.StorageHandler
	AdminHandler    *handlers.AdminHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "course-assistant"
	}
	router.Use(otelgin.Middleware(serviceName))

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.OptionalAuth())
	{
		api.POST("/search", cfg.SearchHandler.Search)
		api.POST("/chat", cfg.ChatHandler.Chat)

		api.GET("/courses/:id/materials", cfg.StudentHandler.CourseMaterials)
		api.GET("/student/courses", cfg.StudentHandler.EnrolledCourses)
		api.GET("/student/queries/recent", cfg.StudentHandler.RecentQueries)

		api.GET("/materials", cfg.MaterialHandler.ListMaterials)
		api.POST("/process-document", cfg.MaterialHandler.ProcessDocument)

		api.GET("/check-openai", cfg.AdminHandler.CheckOpenAI)
		api.POST("/setup-vector-store", cfg.AdminHandler.SetupVectorStore)
		api.POST("/setup-storage", cfg.AdminHandler.SetupStorage)

		api.POST("/storage/upload", cfg.StorageHandler.Upload)
		api.GET("/storage/getUrl", cfg.StorageHandler.GetURL)
		api.DELETE("/storage/delete", cfg.StorageHandler.Delete)
	}

	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protected.GET("/courses", cfg.CourseHandler.ListCourses)
		protected.POST("/courses", cfg.CourseHandler.CreateCourse)
		protected.GET("/courses/:id", cfg.CourseHandler.GetCourse)
		protected.GET("/courses/:id/enrollments", cfg.CourseHandler.ListEnrollments)
		protected.POST("/courses/:id/enrollments", cfg.CourseHandler.EnrollStudents)
		protected.POST("/materials/process", cfg.MaterialHandler.ProcessMaterial)
	}

	return router
}
