package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"pm-tutor-bot/internal/bot"
	"pm-tutor-bot/internal/catalog"
	"pm-tutor-bot/internal/config"
	"pm-tutor-bot/internal/db"
	"pm-tutor-bot/internal/llm"
	"pm-tutor-bot/internal/server"
	"pm-tutor-bot/internal/store"
	"pm-tutor-bot/internal/telegram"
)

func main() {
	cfg := config.Load()
	if cfg.TelegramToken == "" {
		log.Fatal("Set TELEGRAM_BOT_TOKEN in environment variables.")
	}

	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("failed to load lesson catalog: %v", err)
	}

	var sessions store.SessionStore = store.NewMemoryStore()
	var database *db.DB
	if cfg.DatabaseURL != "" {
		database, err = db.New(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to initialize database: %v", err)
		}
		defer database.Close()
		if err := database.EnsureSchema(); err != nil {
			log.Fatalf("failed to prepare database schema: %v", err)
		}
		sessions = store.NewDatabaseStore(database)
		log.Println("database session store enabled")
	} else {
		log.Println("DB_URL not provided, using in-memory session store")
	}

	var gateway bot.CompletionGateway
	if cfg.OpenAIAPIKey != "" {
		g, err := llm.New(cfg.OpenAIAPIKey, cfg.Model)
		if err != nil {
			log.Fatalf("failed to build completion gateway: %v", err)
		}
		gateway = g
	}

	dispatcher := bot.NewDispatcher(cat, sessions, gateway)
	tg, err := telegram.New(cfg.TelegramToken, dispatcher)
	if err != nil {
		log.Fatalf("failed to connect to Telegram: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(cfg, cat, database)
	go func() {
		addr := ":" + cfg.Port
		log.Printf("HTTP API listening on %s", addr)
		if err := http.ListenAndServe(addr, srv.Router()); err != nil {
			log.Printf("http server stopped: %v", err)
		}
	}()

	log.Printf("Bot started as @%s. Waiting for messages...", tg.Username())
	tg.Run(ctx)
	log.Println("shutting down")
}
