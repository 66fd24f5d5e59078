package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv layers the Operational settings onto cfg from the process
// environment, loading a .env file first if one is present (the source's
// own config.go idiom). Unlike the source, only connection/credential
// settings are sourced this way; rule thresholds never are.
func LoadEnv(cfg *Config) *Config {
	_ = godotenv.Load()

	cfg.Operational.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.Operational.TelegramChatID = os.Getenv("TELEGRAM_CHAT_ID")
	cfg.Operational.MongoURI = os.Getenv("MONGO_URI")
	cfg.Operational.MetricsAddr = os.Getenv("METRICS_ADDR")
	return cfg
}
