package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port        string
	DatabaseURL string
	AppEnv      string
	BaseURL     string

	// AdminAccessCode is the one shared code for the admin surface. Empty
	// keeps the admin surface locked.
	AdminAccessCode string
	JWTSecret       string
	ReloadPolicy    string

	AIAPIKey  string
	AIBaseURL string
	AIModel   string

	TelegramBotToken string
	TelegramChatID   int64
}

func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	return &Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      getEnv("DATABASE_URL", "file:portfolio.sqlite"),
		AppEnv:           getEnv("APP_ENV", "local"),
		BaseURL:          getEnv("BASE_URL", "http://localhost:8080"),
		AdminAccessCode:  getEnv("ADMIN_ACCESS_CODE", ""),
		JWTSecret:        getEnv("JWT_SECRET", "secret"),
		ReloadPolicy:     getEnv("RELOAD_POLICY", "all"),
		AIAPIKey:         getEnv("AI_API_KEY", ""),
		AIBaseURL:        getEnv("AI_BASE_URL", "https://api.groq.com/openai/v1/chat/completions"),
		AIModel:          getEnv("AI_MODEL", "llama-3.3-70b-versatile"),
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnvInt64("TELEGRAM_CHAT_ID"),
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// ConfigureLogging sets the logrus formatter for the environment.
func (c *Config) ConfigureLogging() {
	if c.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt64 returns 0 for a missing or malformed value.
func getEnvInt64(key string) int64 {
	raw := getEnv(key, "")
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		logrus.WithField("key", key).WithError(err).Warn("ignoring malformed integer setting")
		return 0
	}
	return v
}
