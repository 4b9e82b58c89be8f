package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rmarques/granabot/internal/api/middleware"
	"github.com/rmarques/granabot/internal/assistant"
	"github.com/rmarques/granabot/internal/config"
	"github.com/rmarques/granabot/internal/llm"
	"github.com/rmarques/granabot/internal/logger"
	bqstore "github.com/rmarques/granabot/internal/store/bigquery"
	"github.com/rmarques/granabot/internal/telegram"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.RequireTelegram(); err != nil {
		log.Fatal().Err(err).Msg("Missing Telegram configuration")
	}
	if err := cfg.RequireBigQuery(); err != nil {
		log.Fatal().Err(err).Msg("Missing BigQuery configuration")
	}

	ctx := logger.WithContext(context.Background(), log)

	repo, err := bqstore.NewRepository(ctx, cfg.ProjectID, cfg.DatasetID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create BigQuery repository")
	}
	defer repo.Close()

	tg, err := telegram.New(cfg.TelegramToken)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Telegram client")
	}
	log.Info().Str("bot", tg.Username()).Msg("Authenticated with Telegram")

	bot := assistant.New(repo, llm.NewGemini(cfg.GeminiModel), cfg.MaxHistory, log)

	mux := http.NewServeMux()

	mux.HandleFunc("/webhook", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		in, err := telegram.DecodeUpdate(r.Body)
		if err != nil {
			log.Warn().Err(err).Msg("Discarding malformed update")
			middleware.WriteError(w, http.StatusBadRequest, "malformed update")
			return
		}
		if in == nil {
			// Not a text message; acknowledge and move on.
			w.WriteHeader(http.StatusOK)
			return
		}

		var reply string
		if in.IsCommand {
			reply = bot.HandleCommand(r.Context(), in.UserID, in.Command, in.Args)
		} else {
			reply = bot.HandleText(r.Context(), in.UserID, in.Text)
		}

		if err := tg.Send(in.ChatID, reply); err != nil {
			log.Error().Err(err).Int64("chat_id", in.ChatID).Msg("Failed to send reply")
		}

		// Always 200: Telegram retries non-2xx responses and the user
		// already got an error text when something went wrong.
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(mux),
		),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting webhook server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	if cfg.WebhookURL != "" {
		if err := tg.RegisterWebhook(cfg.WebhookURL); err != nil {
			log.Error().Err(err).Str("url", cfg.WebhookURL).Msg("Webhook registration failed")
		} else {
			log.Info().Str("url", cfg.WebhookURL).Msg("Webhook registered")
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
