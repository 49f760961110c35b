package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbot "github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neurotechh/tempus_bot/internal/api"
	"github.com/neurotechh/tempus_bot/internal/app"
	"github.com/neurotechh/tempus_bot/internal/config"
	"github.com/neurotechh/tempus_bot/internal/controller"
	"github.com/neurotechh/tempus_bot/internal/repository"
	"github.com/neurotechh/tempus_bot/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting tempus bot",
		zap.String("environment", cfg.Environment),
		zap.String("api_url", cfg.TempusAPIURL))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// База данных
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Миграции
	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	// Репозитории
	kvRepo := repository.NewKVRepository(pool)
	noteRepo := repository.NewNoteRepository(pool)

	// Сервисы
	timetableStore := service.NewTimetableStore(kvRepo)
	timetableService := service.NewTimetableService(timetableStore, logger)
	noteService := service.NewNoteService(noteRepo, logger)

	// Клиент Tempus API (OCR и поиск аудиторий)
	apiClient := api.NewClient(cfg.TempusAPIURL, logger)

	// Telegram бот
	b, err := tgbot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(b, timetableService, noteService, apiClient, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	if err := botController.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot shut down gracefully")
}
