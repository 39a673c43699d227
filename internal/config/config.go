package config

import (
	"log"
	"os"
)

type Config struct {
	Port string

	MistralAPIKey  string
	MistralModel   string
	MistralBaseURL string

	// groq | gemini
	ExtractEngine string

	GroqAPIKey  string
	GroqModel   string
	GroqBaseURL string

	GeminiAPIKey string
	GeminiModel  string

	TelegramToken string
	WebhookURL    string
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8000"),

		MistralAPIKey:  mustEnv("MISTRAL_API_KEY"),
		MistralModel:   getEnv("MISTRAL_MODEL", "mistral-ocr-latest"),
		MistralBaseURL: getEnv("MISTRAL_BASE_URL", ""),

		ExtractEngine: getEnv("EXTRACT_ENGINE", "groq"),

		GroqModel:   getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		GroqBaseURL: getEnv("GROQ_BASE_URL", ""),

		GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		TelegramToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		WebhookURL:    getEnv("WEBHOOK_URL", ""),
	}

	// Only the selected extraction engine's key is required.
	switch cfg.ExtractEngine {
	case "gemini":
		cfg.GeminiAPIKey = mustEnv("GEMINI_API_KEY")
		cfg.GroqAPIKey = getEnv("GROQ_API_KEY", "")
	default:
		cfg.GroqAPIKey = mustEnv("GROQ_API_KEY")
		cfg.GeminiAPIKey = getEnv("GEMINI_API_KEY", "")
	}
	return cfg
}
