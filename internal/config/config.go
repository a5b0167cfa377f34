package config

import (
	"log"
	"os"
	"strconv"
)

// Config is loaded once at startup and passed into constructors.
// Nothing below cmd/main.go reads the environment directly.
type Config struct {
	Port string

	SarvamAPIKey  string
	SarvamBaseURL string

	DefaultHindiLang   string
	DefaultEnglishLang string

	S3     S3Config
	Alerts AlertConfig
}

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
}

func (s S3Config) Enabled() bool {
	return s.Endpoint != "" && s.Bucket != ""
}

type AlertConfig struct {
	BotToken    string
	AdminChatID int64
}

func (a AlertConfig) Enabled() bool {
	return a.BotToken != "" && a.AdminChatID != 0
}

func Load() Config {
	if os.Getenv("SARVAM_API_KEY") == "" {
		log.Printf("[config] SARVAM_API_KEY is not set, provider calls will be rejected")
	}

	chatID, _ := strconv.ParseInt(os.Getenv("TELEGRAM_ADMIN_CHAT_ID"), 10, 64)

	return Config{
		Port: envOr("PORT", "8080"),

		SarvamAPIKey:  os.Getenv("SARVAM_API_KEY"),
		SarvamBaseURL: envOr("SARVAM_BASE_URL", "https://api.sarvam.ai"),

		DefaultHindiLang:   envOr("DEFAULT_HINDI_LANG", "hi-IN"),
		DefaultEnglishLang: envOr("DEFAULT_ENGLISH_LANG", "en-IN"),

		S3: S3Config{
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Bucket:    os.Getenv("S3_BUCKET"),
			Region:    os.Getenv("S3_REGION"),
		},
		Alerts: AlertConfig{
			BotToken:    os.Getenv("TELEGRAM_ALERT_TOKEN"),
			AdminChatID: chatID,
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
