package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config настройки бота из окружения
type Config struct {
	TelegramToken  string
	DBDSN          string
	TempusAPIURL   string
	Environment    string
	MigrationsPath string
}

// Load читает конфигурацию из .env файла и переменных окружения
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		DBDSN:          os.Getenv("DB_DSN"),
		TempusAPIURL:   os.Getenv("TEMPUS_API_URL"),
		Environment:    os.Getenv("ENV"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
	}

	// Дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.TempusAPIURL == "" {
		cfg.TempusAPIURL = "https://tempus-api.neurotechh.xyz"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}

	// Обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	return cfg, nil
}
