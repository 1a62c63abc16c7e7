package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"quiz-platform/internal/auth"
	"quiz-platform/internal/db"
	"quiz-platform/internal/event"
	"quiz-platform/internal/generation"
	"quiz-platform/internal/handlers"
	"quiz-platform/internal/repository"
	"quiz-platform/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}
	db.InitMongo(mongoURI)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// RabbitMQ event publisher
	rabbitURL := os.Getenv("RABBITMQ_URI")
	eventExchange := os.Getenv("RABBITMQ_EXCHANGE")
	var publisher *event.Publisher
	if rabbitURL != "" && eventExchange != "" {
		var err error
		publisher, err = event.NewPublisher(rabbitURL, eventExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, platform events will not be published")
	}

	// Question-generation collaborator. Optional: the generate route
	// surfaces an upstream error when unset.
	var generator *generation.Client
	if baseURL := os.Getenv("GENERATION_BASE_URL"); baseURL != "" {
		generator = generation.NewClient(
			baseURL,
			os.Getenv("GENERATION_API_KEY"),
			os.Getenv("GENERATION_MODEL"),
		)
	} else {
		log.Println("Generation service not configured, admin question generation disabled")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	database := db.Client.Database("quiz_platform")

	// Repositories
	categoryRepo := repository.NewCategoryRepository(database)
	questionRepo := repository.NewQuestionRepository(database)
	quizRepo := repository.NewQuizRepository(database)
	attemptRepo := repository.NewAttemptRepository(database)

	// Services
	categoryService := service.NewCategoryService(categoryRepo, questionRepo)
	questionService := service.NewQuestionService(questionRepo, categoryRepo)
	quizService := service.NewQuizService(quizRepo, attemptRepo, questionService)
	historyService := service.NewHistoryService(attemptRepo, quizRepo, categoryRepo)
	adminService := service.NewAdminService(questionRepo, categoryRepo, attemptRepo, generator)

	// Handlers
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	quizHandler := handlers.NewQuizHandler(quizService, historyService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Public routes - category browsing needs no identity
	publicCategory := r.Group("/public/quiz/category")
	{
		publicCategory.GET("/", categoryHandler.ListCategories)
		publicCategory.GET("/tree", categoryHandler.GetCategoryTree)
		publicCategory.GET("/:id", categoryHandler.GetCategory)
	}

	setupQuizRoutes(r, quizHandler, publisher, jwtSecret)
	setupAdminRoutes(r, categoryHandler, questionHandler, adminHandler, publisher, jwtSecret)

	port := os.Getenv("PORT")
	if port == "" {
		port = "6660"
	}
	r.Run(":" + port)
}

func setupQuizRoutes(r *gin.Engine, quizHandler *handlers.QuizHandler, publisher *event.Publisher, jwtSecret string) {
	protectedQuiz := r.Group("/protected/quiz")
	protectedQuiz.Use(auth.RequireUser(jwtSecret))
	protectedQuiz.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("[QUIZ] %v | %3d | %13v | %15s | %-7s %#v\n%s",
			param.TimeStamp.Format("2006/01/02 - 15:04:05"),
			param.StatusCode,
			param.Latency,
			param.ClientIP,
			param.Method,
			param.Path,
			param.ErrorMessage,
		)
	}))
	{
		// Start a quiz: selection, quiz record, IN_PROGRESS attempt
		protectedQuiz.POST("/start", func(c *gin.Context) {
			quizHandler.StartQuiz(c)
			if publisher != nil && handlers.Succeeded(c) {
				publisher.Publish("quiz.started", gin.H{
					"user_id":   auth.UserID(c),
					"timestamp": time.Now(),
				})
			}
		})

		// Submit answers: the attempt's single terminal transition
		protectedQuiz.POST("/attempt/:id/submit", func(c *gin.Context) {
			quizHandler.SubmitQuiz(c)
			if publisher != nil && handlers.Succeeded(c) {
				publisher.Publish("quiz.submitted", gin.H{
					"attempt_id": c.Param("id"),
					"user_id":    auth.UserID(c),
					"timestamp":  time.Now(),
				})
			}
		})

		// Reconstruct an active or completed attempt from the server
		protectedQuiz.GET("/attempt/:id", quizHandler.GetAttempt)

		// Completed attempts with aggregate statistics
		protectedQuiz.GET("/history", quizHandler.GetHistory)
	}
}

func setupAdminRoutes(
	r *gin.Engine,
	categoryHandler *handlers.CategoryHandler,
	questionHandler *handlers.QuestionHandler,
	adminHandler *handlers.AdminHandler,
	publisher *event.Publisher,
	jwtSecret string,
) {
	admin := r.Group("/protected/quiz/admin")
	admin.Use(auth.RequireUser(jwtSecret))
	admin.Use(auth.RequireAdmin())
	{
		admin.POST("/category", categoryHandler.CreateCategory)
		admin.PUT("/category/:id", categoryHandler.UpdateCategory)
		admin.DELETE("/category/:id", categoryHandler.DeleteCategory)

		admin.GET("/question", questionHandler.ListQuestions)
		admin.GET("/question/:id", questionHandler.GetQuestion)
		admin.POST("/question", questionHandler.CreateQuestion)
		admin.PUT("/question/:id", questionHandler.UpdateQuestion)
		admin.DELETE("/question/:id", questionHandler.DeleteQuestion)

		admin.POST("/generate", func(c *gin.Context) {
			adminHandler.GenerateQuestions(c)
			if publisher != nil && handlers.Succeeded(c) {
				publisher.Publish("question.generated", gin.H{
					"user_id":   auth.UserID(c),
					"timestamp": time.Now(),
				})
			}
		})

		admin.GET("/stats", adminHandler.GetDashboardStats)
	}
}
