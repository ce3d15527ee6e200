package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/memora-api/internal/config"
	"github.com/yourusername/memora-api/internal/handler"
	"github.com/yourusername/memora-api/internal/middleware"
	pgRepo "github.com/yourusername/memora-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/memora-api/internal/repository/redis"
	"github.com/yourusername/memora-api/internal/service"
	"github.com/yourusername/memora-api/internal/service/leitner"
	"github.com/yourusername/memora-api/pkg/auth"
	"github.com/yourusername/memora-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis с использованием унифицированной конфигурации
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	accountRepo := pgRepo.NewAccountRepo(db)
	patientRepo := pgRepo.NewPatientRepo(db)
	managerRepo := pgRepo.NewManagerRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	leitnerRepo := pgRepo.NewLeitnerRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// --- Инициализация конфигурации планировщика Лейтнера ---
	leitnerConfig := leitner.DefaultConfig()
	if len(cfg.Leitner.BoxDelays) > 0 {
		leitnerConfig.BoxDelays = cfg.Leitner.BoxDelays
	}
	if cfg.Leitner.QuestionsPerQuiz > 0 {
		leitnerConfig.QuestionsPerQuiz = cfg.Leitner.QuestionsPerQuiz
	}
	if cfg.Leitner.MaxQuestions > 0 {
		leitnerConfig.MaxQuestions = cfg.Leitner.MaxQuestions
	}
	if err := leitnerConfig.Validate(); err != nil {
		log.Printf("Invalid leitner configuration: %v", err)
		os.Exit(1)
	}

	// Таблица задержек нужна SQL-отбору вопросов к повторению, поэтому
	// сидируем ее из конфигурации при каждом старте
	if err := leitnerRepo.Seed(leitnerConfig.Parameters()); err != nil {
		log.Printf("Failed to seed leitner parameters: %v", err)
		os.Exit(1)
	}

	// --- Инициализация JWTService ---
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs, cacheRepo)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Инициализируем сервис отправки писем опекунам
	var emailService service.EmailService = &service.NoopEmailService{}
	if cfg.Email.Enabled {
		emailService, err = service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.From)
		if err != nil {
			log.Printf("Failed to initialize email service: %v", err)
			os.Exit(1)
		}
		log.Println("Email service (Resend) initialized")
	}

	// Инициализируем сервисы
	authService, err := service.NewAuthService(accountRepo, jwtService)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}
	accountService := service.NewAccountService(accountRepo)
	patientService := service.NewPatientService(patientRepo, accountRepo)
	managerService := service.NewManagerService(managerRepo, emailService)
	questionService := service.NewQuestionService(questionRepo, managerRepo)
	quizService := service.NewQuizService(quizRepo, questionRepo, accountRepo, leitnerConfig)

	// Инициализируем обработчики
	const imageBaseURL = "/uploads"
	authHandler := handler.NewAuthHandler(authService)
	accountHandler := handler.NewAccountHandler(accountService)
	patientHandler := handler.NewPatientHandler(patientService)
	managerHandler := handler.NewManagerHandler(managerService)
	questionHandler := handler.NewQuestionHandler(questionService, imageBaseURL)
	quizHandler := handler.NewQuizHandler(quizService, imageBaseURL)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	// В production (GIN_MODE=release): не доверяем прокси (защита от IP spoofing)
	// В development: доверяем localhost
	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8000", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Статическая раздача иллюстраций вопросов
	uploadsDir := cfg.Uploads.Dir
	if uploadsDir == "" {
		uploadsDir = "./uploads"
	}
	router.StaticFS(imageBaseURL, http.Dir(uploadsDir))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		{
			strictLimit := rateLimiter.Limit(middleware.StrictAuthRateLimitConfig())
			authGroup.POST("/register", strictLimit, authHandler.Register)
			authGroup.POST("/login", strictLimit, authHandler.Login)

			// Маршруты, требующие аутентификации
			authedAuth := authGroup.Group("/")
			authedAuth.Use(authMiddleware.RequireAuth())
			authedAuth.Use(rateLimiter.Limit(middleware.DefaultAuthRateLimitConfig()))
			{
				authedAuth.POST("/logout", authHandler.Logout)
				authedAuth.POST("/change-password", authHandler.ChangePassword)
			}
		}

		// Все остальные маршруты требуют аутентификации
		authed := api.Group("")
		authed.Use(authMiddleware.RequireAuth())
		{
			// Учетная запись
			account := authed.Group("/account")
			{
				account.GET("", accountHandler.GetAccount)
				account.PUT("", accountHandler.UpdateAccount)
				account.DELETE("", accountHandler.DeleteAccount)
			}

			// Пациент (не более одного на учетную запись)
			patient := authed.Group("/patient")
			{
				patient.POST("", patientHandler.CreatePatient)
				patient.GET("", patientHandler.GetPatient)
				patient.PUT("", patientHandler.UpdatePatient)
				patient.DELETE("", patientHandler.DeletePatient)
			}

			// Опекуны
			managers := authed.Group("/managers")
			{
				managers.POST("", managerHandler.CreateManager)
				managers.GET("", managerHandler.GetManagers)

				managerWithID := managers.Group("/:id")
				managerWithID.Use(middleware.ExtractUintParam("id", "managerID")) // Применяем middleware
				{
					managerWithID.GET("", managerHandler.GetManager)
					managerWithID.PUT("", managerHandler.UpdateManager)
					managerWithID.DELETE("", managerHandler.DeleteManager)
				}
			}

			// Вопросы
			questions := authed.Group("/questions")
			{
				questions.POST("", questionHandler.CreateQuestion)
				questions.GET("", questionHandler.GetQuestions)
				questions.GET("/export", questionHandler.ExportQuestions)

				questionWithID := questions.Group("/:id")
				questionWithID.Use(middleware.ExtractUintParam("id", "questionID")) // Применяем middleware
				{
					questionWithID.GET("", questionHandler.GetQuestion)
					questionWithID.PUT("", questionHandler.UpdateQuestion)
					questionWithID.DELETE("", questionHandler.DeleteQuestion)
				}
			}

			// Квизы
			quizzes := authed.Group("/quizzes")
			{
				quizzes.GET("/next/:count",
					middleware.ExtractQuestionCount("questionCount"),
					quizHandler.GetOrCreateQuiz)
				quizzes.POST("/answers", quizHandler.SubmitAnswer)

				quizWithID := quizzes.Group("/:id")
				quizWithID.Use(middleware.ExtractUintParam("id", "quizID")) // Применяем middleware
				{
					quizWithID.GET("", quizHandler.GetQuiz)
				}
			}
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Server.Port)

	// После получения сигнала SIGINT или SIGTERM корректно завершаем работу
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
