// One-shot tool that points the Telegram bot at the public webhook URL.
// Run it once after deploying the bot behind a new address.
package main

import (
	"flag"
	"fmt"

	"github.com/rmarques/granabot/internal/config"
	"github.com/rmarques/granabot/internal/logger"
	"github.com/rmarques/granabot/internal/telegram"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	url := flag.String("url", cfg.WebhookURL, "public webhook URL (or set WEBHOOK_URL env)")
	flag.Parse()

	if err := cfg.RequireTelegram(); err != nil {
		log.Fatal().Err(err).Msg("Missing Telegram configuration")
	}
	if *url == "" {
		log.Fatal().Msg("Usage: register-webhook -url https://host/webhook")
	}

	tg, err := telegram.New(cfg.TelegramToken)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Telegram client")
	}

	if err := tg.RegisterWebhook(*url); err != nil {
		log.Fatal().Err(err).Str("url", *url).Msg("Webhook registration failed")
	}

	fmt.Printf("Webhook for @%s registered at %s\n", tg.Username(), *url)
}
