package main

import (
	"log"
	"os"
	"time"

	"learning-service/internal/db"
	"learning-service/internal/event"
	"learning-service/internal/handlers"
	"learning-service/internal/repository"
	"learning-service/internal/service"

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
	defer db.CloseMongo()

	// RabbitMQ event publisher
	rabbitURL := os.Getenv("RABBITMQ_URI")
	eventExchange := os.Getenv("RABBITMQ_EXCHANGE")
	var publisher *event.EventPublisher
	if rabbitURL != "" && eventExchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(rabbitURL, eventExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, progress events will not be published")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	database := db.Client.Database("learning_service")

	// Repositories
	questionRepo := repository.NewQuestionRepository(database)
	progressRepo := repository.NewProgressRepository(database)
	badgeRepo := repository.NewBadgeRepository(database)
	resultRepo := repository.NewResultRepository(database)

	// Services
	progressService := service.NewProgressService(progressRepo, questionRepo, badgeRepo, resultRepo)
	quizService := service.NewQuizService(resultRepo, progressRepo, badgeRepo)
	gamificationService := service.NewGamificationService(progressRepo, badgeRepo, resultRepo)

	// Handlers
	progressHandler := handlers.NewProgressHandler(progressService)
	quizHandler := handlers.NewQuizHandler(quizService)
	gamificationHandler := handlers.NewGamificationHandler(gamificationService)
	questionHandler := handlers.NewQuestionHandler(questionRepo)
	badgeHandler := handlers.NewBadgeHandler(badgeRepo)

	// Progress routes
	progress := r.Group("/learning/progress")
	{
		progress.GET("/", progressHandler.GetProgress)
		progress.POST("/answer", func(c *gin.Context) {
			progressHandler.SubmitAnswer(c)
			if publisher != nil {
				publisher.Publish("progress.answer", gin.H{"user_id": c.GetHeader("X-User-ID")})
			}
		})
		progress.GET("/next-question", progressHandler.NextQuestion)
		progress.POST("/session/complete", func(c *gin.Context) {
			progressHandler.CompleteSession(c)
			if publisher != nil {
				publisher.Publish("progress.session", gin.H{"user_id": c.GetHeader("X-User-ID")})
			}
		})
		progress.POST("/bookmark/:questionId", progressHandler.ToggleBookmark)
	}

	// Gamification routes
	gamification := r.Group("/learning/gamification")
	{
		gamification.GET("/profile", gamificationHandler.GetProfile)
		gamification.GET("/badges", gamificationHandler.ListBadges)
		gamification.GET("/streak", gamificationHandler.GetStreak)
	}

	// Quiz result routes
	quiz := r.Group("/learning/quiz")
	{
		quiz.POST("/results", func(c *gin.Context) {
			quizHandler.SubmitResult(c)
			if publisher != nil {
				publisher.Publish("quiz.completed", gin.H{"user_id": c.GetHeader("X-User-ID")})
			}
		})
		quiz.GET("/results", quizHandler.GetHistory)
	}

	// Question catalog routes
	question := r.Group("/learning/question")
	{
		question.GET("/", questionHandler.ListQuestions)
		question.GET("/:id", questionHandler.GetQuestion)
		question.POST("/", questionHandler.CreateQuestion)
		question.PUT("/:id", questionHandler.UpdateQuestion)
		question.DELETE("/:id", questionHandler.DeleteQuestion)
	}

	// Badge catalog routes
	badge := r.Group("/learning/badge")
	{
		badge.GET("/", badgeHandler.ListCatalog)
		badge.POST("/", badgeHandler.CreateBadge)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("learning-service listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
