package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/matchday/brackets"
	"github.com/Dosada05/matchday/config"
	"github.com/Dosada05/matchday/db"
	"github.com/Dosada05/matchday/handlers"
	"github.com/Dosada05/matchday/live"
	"github.com/Dosada05/matchday/messaging"
	"github.com/Dosada05/matchday/repositories"
	api "github.com/Dosada05/matchday/routes"
	"github.com/Dosada05/matchday/services"
	"github.com/Dosada05/matchday/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

const shutdownTimeout = 15 * time.Second

// @title Matchday API
// @version 1.0
// @description Турниры, матчи, события матчей и подтверждение результатов.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, cfg.DBConnectTimeout)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if err := db.Migrate(dbConn, logger); err != nil {
		logger.Error("failed to apply migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// Cloudflare R2 (опционально)
	var uploader storage.FileUploader
	if cfg.R2Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(context.Background(), storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 is not configured, media uploads are disabled")
	}

	var mailer services.Mailer
	if cfg.SMTPEnabled() {
		mailer = services.NewEmailService(cfg)
	} else {
		logger.Warn("SMTP is not configured, email notifications are disabled")
	}

	var publisher messaging.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = messaging.NewAMQPPublisher(messaging.AMQPPublisherConfig{
			URL:      cfg.AMQPURL,
			Exchange: cfg.AMQPExchange,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to AMQP broker", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("AMQP publisher initialized", slog.String("exchange", cfg.AMQPExchange))
	}

	// Инициализация WebSocket Hub
	wsHub := live.NewHub(logger)
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	tx := repositories.NewPostgresTransactor(dbConn)
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	eventRepo := repositories.NewPostgresMatchEventRepository(dbConn)
	notificationRepo := repositories.NewPostgresNotificationRepository(dbConn)
	logger.Info("Repositories initialized")

	// Инициализация сервисов
	dispatcher := services.NewNotificationDispatcher(services.NotificationDispatcherDeps{
		Repo:      notificationRepo,
		UserRepo:  userRepo,
		Mailer:    mailer,
		Publisher: publisher,
		Hub:       wsHub,
		PublicURL: cfg.PublicURL,
		Logger:    logger,
	})
	notifier := services.NewAsyncNotifier(dispatcher, cfg.NotificationTimeout, logger)

	actorService := services.NewActorService(userRepo, teamRepo)
	authService := services.NewAuthService(tx, userRepo)
	teamService := services.NewTeamService(teamRepo, playerRepo, uploader, logger)
	playerService := services.NewPlayerService(playerRepo, teamRepo)
	tournamentService := services.NewTournamentService(
		tx,
		tournamentRepo,
		teamRepo,
		matchRepo,
		brackets.NewRoundRobinGenerator(),
		logger,
	)
	matchService := services.NewMatchService(services.MatchServiceDeps{
		Tx:             tx,
		MatchRepo:      matchRepo,
		EventRepo:      eventRepo,
		TeamRepo:       teamRepo,
		TournamentRepo: tournamentRepo,
		Notifier:       notifier,
		Hub:            wsHub,
		Logger:         logger,
	})
	eventService := services.NewMatchEventService(services.MatchEventServiceDeps{
		Tx:             tx,
		EventRepo:      eventRepo,
		MatchRepo:      matchRepo,
		PlayerRepo:     playerRepo,
		TeamRepo:       teamRepo,
		TournamentRepo: tournamentRepo,
		Uploader:       uploader,
		Notifier:       notifier,
		Hub:            wsHub,
		Logger:         logger,
	})
	notificationService := services.NewNotificationService(notificationRepo)
	logger.Info("Services initialized")

	// Инициализация обработчиков HTTP
	h := api.Handlers{
		Auth:         handlers.NewAuthHandler(authService, cfg.JWTSecretKey, cfg.JWTTTL),
		Team:         handlers.NewTeamHandler(teamService, playerService),
		Tournament:   handlers.NewTournamentHandler(tournamentService),
		Match:        handlers.NewMatchHandler(matchService),
		MatchEvent:   handlers.NewMatchEventHandler(eventService),
		Notification: handlers.NewNotificationHandler(notificationService),
		WebSocket:    handlers.NewWebSocketHandler(wsHub, matchService, cfg.CORSOrigins, logger),
	}
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, h, api.Options{
		JWTSecret:   []byte(cfg.JWTSecretKey),
		CORSOrigins: cfg.CORSOrigins,
		Actors:      actorService,
		Logger:      logger,
	})
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			exitCode = 1
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			exitCode = 1
		} else {
			logger.Info("server shutdown complete")
		}
	}

	// Доставляем уже поставленные уведомления до закрытия зависимостей.
	notifier.Wait()
	wsHub.Stop()
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("failed to close AMQP publisher", slog.Any("error", err))
		}
	}
	logger.Info("application exited")
	if exitCode != 0 {
		dbConn.Close()
		os.Exit(exitCode)
	}
}
