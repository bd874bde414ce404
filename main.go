package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"main/config"
	"main/handler"
	"main/llm"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Fatalf("Error loading .env file: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"OPENAI_API_KEY",
		"REDIS_URL",
		"CRON_SECRET",
		"PORT",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	// Initialize JWT
	utils.InitJWT()
	// Initialize MongoDB connection
	utils.InitMongoClient()
}

func setupRouter() *gin.Engine {
	router := gin.Default()

	// Initialize repositories
	tasksRepo := repository.GetTasksRepo(utils.MongoClient)
	suggestionsRepo := repository.GetSuggestionsRepo(utils.MongoClient)
	patternsRepo := repository.GetPatternsRepo(utils.MongoClient)
	analyticsRepo := repository.GetAnalyticsRepo(utils.MongoClient)
	profilesRepo := repository.GetProfilesRepo(utils.MongoClient)
	pushRepo := repository.GetPushRepo(utils.MongoClient)

	dbName := os.Getenv("MONGO_DB")
	if err := repository.SetupIndexes(utils.MongoClient.Database(dbName)); err != nil {
		log.Printf("Warning: failed to create indexes: %v", err)
	}

	// Initialize the reminder dedup cache
	redisCfg := config.LoadRedisConfig()
	notifiedCache, err := services.NewNotifiedCache(redisCfg.URL, redisCfg.NotifiedTTL)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}

	// Initialize the AI client
	aiCfg := config.LoadAIConfig()
	aiClient, err := llm.NewClient(aiCfg)
	if err != nil {
		log.Fatalf("Failed to initialize AI client: %v", err)
	}

	// Initialize services
	patternService := usecase.NewPatternService(patternsRepo)
	taskService := usecase.NewTaskService(tasksRepo, analyticsRepo, notifiedCache)
	analysisService := usecase.NewAnalysisService(tasksRepo, patternsRepo, analyticsRepo, suggestionsRepo, aiClient, patternService, aiCfg)
	suggestionService := usecase.NewSuggestionService(suggestionsRepo, tasksRepo)
	chatService := usecase.NewChatService(aiClient, taskService, profilesRepo)
	generationService := usecase.NewGenerationService(aiClient, taskService)
	reminderService := usecase.NewReminderService(tasksRepo, pushRepo, notifiedCache)

	// Initialize handlers
	taskHandler := handler.NewTaskHandler(taskService)
	aiHandler := handler.NewAIHandler(analysisService, suggestionService)
	chatHandler := handler.NewChatHandler(chatService, generationService)
	profileHandler := handler.NewProfileHandler(profilesRepo)
	pushHandler := handler.NewPushHandler(pushRepo)
	cronHandler := handler.NewCronHandler(taskService, analysisService, reminderService)

	// Global middleware
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestSizeLimiter(1 << 20))

	// Health and metrics
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		tasks := protected.Group("/tasks")
		{
			tasks.GET("", taskHandler.GetTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.POST("/:id/complete", taskHandler.ToggleComplete)
			tasks.GET("/stats", taskHandler.GetStats)
		}

		ai := protected.Group("/ai")
		{
			ai.POST("/analyze", aiHandler.Analyze)
			ai.GET("/suggestions", aiHandler.ListSuggestions)
			ai.POST("/suggestions/:id/apply", aiHandler.ApplySuggestion)
			ai.POST("/suggestions/:id/reject", aiHandler.RejectSuggestion)
			ai.POST("/generate-tasks", chatHandler.GenerateTasks)
		}

		protected.POST("/chat", chatHandler.Chat)
		protected.GET("/motivation", middleware.CacheControlMiddleware("3600"), chatHandler.Motivation)

		protected.GET("/profile", profileHandler.GetProfile)
		protected.PUT("/profile", profileHandler.UpdateProfile)

		push := protected.Group("/push")
		{
			push.POST("/subscribe", pushHandler.Subscribe)
			push.DELETE("/subscribe", pushHandler.Unsubscribe)
		}
	}

	// Cron routes (shared-secret authentication)
	cron := router.Group("/cron")
	cron.Use(middleware.CronAuthMiddleware(os.Getenv("CRON_SECRET")))
	{
		cron.POST("/reschedule-overdue", cronHandler.RescheduleOverdue)
		cron.POST("/analyze-all", cronHandler.AnalyzeAll)
		cron.POST("/reminders", cronHandler.Reminders)
	}

	return router
}

func main() {
	// Set up router
	router := setupRouter()

	// Sample host CPU usage for the metrics endpoint
	middleware.StartSystemMetrics(15 * time.Second)

	// Get port from environment variable or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start server
	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
