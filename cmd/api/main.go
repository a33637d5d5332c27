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

	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/config"
	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/handler"
	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/middleware"
	pgRepo "github.com/Vasanthadithya-mundrathi/VQUIZ/internal/repository/postgres"
	redisRepo "github.com/Vasanthadithya-mundrathi/VQUIZ/internal/repository/redis"
	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/service"
	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/service/session"
	ws "github.com/Vasanthadithya-mundrathi/VQUIZ/internal/websocket"
	"github.com/Vasanthadithya-mundrathi/VQUIZ/pkg/database"
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

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	gameRepo := pgRepo.NewGameRepo(db)
	cacheRepo := redisRepo.NewCacheRepo(redisClient)

	// Инициализируем WebSocket-хаб для ленты событий сессий
	wsHub := ws.NewHub()
	go wsHub.Run()

	// Инициализируем сервисы
	userService := service.NewUserService(userRepo)
	quizService := service.NewQuizService(quizRepo)
	statsService := service.NewStatsService(userRepo, gameRepo, cacheRepo)
	gameService := service.NewGameService(gameRepo, quizRepo, statsService)
	leaderboardService := service.NewLeaderboardService(userRepo, cacheRepo,
		time.Duration(cfg.Leaderboard.CacheTTLSeconds)*time.Second)

	sessionConfig := &session.Config{
		QuestionTimeLimitMs:       cfg.Session.QuestionTimeLimitMs,
		FeedbackDelayMs:           cfg.Session.FeedbackDelayMs,
		SubmittedKeyTTLSeconds:    cfg.Session.SubmittedKeyTTLSeconds,
		CompletedRetentionSeconds: cfg.Session.CompletedRetentionSeconds,
	}
	sessionManager := session.NewManager(sessionConfig, &session.Dependencies{
		QuizRepo:  quizRepo,
		GameRepo:  gameRepo,
		CacheRepo: cacheRepo,
		Submitter: statsService,
		OnEvent: func(sessionID string, event *session.Event) {
			wsHub.Publish(sessionID, event)
		},
	})

	// Инициализируем обработчики
	userHandler := handler.NewUserHandler(userService, statsService)
	quizHandler := handler.NewQuizHandler(quizService, gameService)
	gameHandler := handler.NewGameHandler(gameService)
	sessionHandler := handler.NewSessionHandler(sessionManager)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)
	wsHandler := handler.NewWSHandler(wsHub, sessionManager)

	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Инициализируем роутер Gin
	router := gin.Default()

	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		// Production: не доверяем прокси-заголовкам
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
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Игроки
		users := api.Group("/users")
		{
			users.POST("/register",
				rateLimiter.Limit(middleware.RegisterRateLimitConfig()),
				userHandler.Register)
			users.GET("/:name/stats", userHandler.GetStats)
			users.POST("/:name/score", userHandler.DirectScore)
		}

		// Лидерборды
		api.GET("/leaderboard", leaderboardHandler.Get)

		// Викторины
		quizzes := api.Group("/quizzes")
		{
			quizzes.GET("", quizHandler.List)
			quizzes.POST("", quizHandler.Create)
			quizzes.GET("/creator/:name", quizHandler.ListByCreator)

			quizWithID := quizzes.Group("/:id")
			quizWithID.Use(middleware.ExtractUintParam("id", "quizID"))
			{
				quizWithID.GET("", quizHandler.Get)
				quizWithID.PUT("", quizHandler.Update)
				quizWithID.DELETE("", quizHandler.Delete)
				quizWithID.GET("/games/export", quizHandler.ExportGames)
				quizWithID.POST("/play",
					rateLimiter.Limit(middleware.PlayRateLimitConfig()),
					sessionHandler.Play)
			}
		}

		// Игры
		games := api.Group("/games")
		{
			games.POST("", gameHandler.Create)

			gameWithID := games.Group("/:id")
			gameWithID.Use(middleware.ExtractUintParam("id", "gameID"))
			{
				gameWithID.GET("", gameHandler.Get)
				gameWithID.POST("/submit", gameHandler.Submit)
			}
		}

		// Игровые сессии
		sessions := api.Group("/sessions")
		{
			sessions.GET("/:id", sessionHandler.State)
			sessions.POST("/:id/answer", sessionHandler.Answer)
		}
	}

	// WebSocket-лента событий сессии
	router.GET("/ws/sessions/:id", wsHandler.Subscribe)

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

	// Ожидаем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Получен сигнал остановки, завершаем работу...")

	// Останавливаем прием новых запросов и даем активным завершиться
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Ошибка при остановке HTTP сервера: %v", err)
	}

	// Гасим сессии и WebSocket-подключения
	sessionManager.Shutdown()
	wsHub.Shutdown()

	// Закрываем подключения к хранилищам
	if err := redisClient.Close(); err != nil {
		log.Printf("Ошибка при закрытии подключения к Redis: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Ошибка при закрытии подключения к БД: %v", err)
		}
	}

	log.Println("Сервер остановлен")
}
