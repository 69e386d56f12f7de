package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"quizforge/config"
	"quizforge/database"
	accountctrl "quizforge/internal/controller/account"
	authctrl "quizforge/internal/controller/auth"
	quizctrl "quizforge/internal/controller/quiz"
	"quizforge/internal/logger"
	"quizforge/internal/middleware"
	"quizforge/internal/model"
	"quizforge/internal/repository"
	"quizforge/internal/service"
)

// @title QuizForge API
// @version 1.0
// @description Quiz platform API: accounts, quiz authoring, graded attempts, and difficulty-based recommendations.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories layer
		fx.Provide(
			repository.NewAccountRepository,
			repository.NewQuizRepository,
			repository.NewQuestionRepository,
			repository.NewAttemptRepository,
			repository.NewAnswerRepository,
		),

		// Services layer
		fx.Provide(
			service.NewAuthService,
			service.NewQuizService,
			service.NewScoreCalculatorService,
			service.NewSubmissionService,
			service.NewRecommendationService,
		),

		// API controllers layer
		fx.Provide(
			authctrl.NewAuthController,
			quizctrl.NewQuizController,
			accountctrl.NewAccountController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	// Route gin's request log through zerolog.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authController *authctrl.AuthController,
	quizController *quizctrl.QuizController,
	accountController *accountctrl.AccountController,
) {
	api := router.Group("/api/v1")

	// Public routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authController.Register)
		authGroup.POST("/login", authController.Login)
	}

	// Authenticated routes
	protected := api.Group("")
	protected.Use(middleware.Auth(cfg))
	{
		protected.GET("/me", accountController.GetMe)
		protected.GET("/me/stats", accountController.GetMyStats)
		protected.GET("/recommendations", accountController.GetRecommendations)

		quizzes := protected.Group("/quizzes")
		{
			quizzes.POST("", quizController.CreateQuiz)
			quizzes.GET("", quizController.GetAllQuizzes)
			quizzes.GET("/:quiz_id", quizController.GetQuizDetails)
			quizzes.PUT("/:quiz_id", quizController.UpdateQuiz)
			quizzes.DELETE("/:quiz_id", quizController.DeleteQuiz)
			quizzes.POST("/:quiz_id/attempts", quizController.SubmitAttempt)
			quizzes.GET("/:quiz_id/my-attempts", quizController.GetMyAttempts)
		}
		protected.GET("/attempts/:attempt_id", quizController.GetAttemptDetails)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("QuizForge API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Account{},
		&model.Quiz{},
		&model.Question{},
		&model.Option{},
		&model.Attempt{},
		&model.Answer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
