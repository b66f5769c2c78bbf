package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Telegram bot credential; the process refuses to start without it.
	TelegramToken string
	// Completion-service credential; optional. Quiz and free-text answers
	// degrade to a configuration-needed message when absent.
	OpenAIAPIKey string
	Model        string
	// Operational HTTP API
	Port          string
	AllowedOrigin string
	// Optional Postgres session store
	DatabaseURL string
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		TelegramToken: firstEnv("TELEGRAM_BOT_TOKEN", "BOT_TOKEN"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		Model:         getEnvDefault("OPENAI_MODEL", "gpt-4o-mini"),
		Port:          getEnvDefault("PORT", "8080"),
		AllowedOrigin: getEnvDefault("ALLOWED_ORIGIN", "*"),
		DatabaseURL:   os.Getenv("DB_URL"),
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("warning: OPENAI_API_KEY is not set; quiz and free-text answers are disabled")
	}
	return cfg
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
