package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database (optional; settings persistence is disabled without it)
	DatabaseURL string

	// OpenAI
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OpenAIModel     string
	OpenAIMaxTokens int

	// Gemini
	GeminiAPIKey    string
	GeminiBaseURL   string
	GeminiMaxTokens int

	// Z.AI (OpenAI-compatible endpoint)
	ZAIAPIKey    string
	ZAIBaseURL   string
	ZAIModel     string
	ZAIMaxTokens int

	// Upstream HTTP
	UpstreamTimeoutSecs int

	// Storage
	StoragePath string

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		Env:         getEnvOrDefault("ENV", "development"),
		DatabaseURL: getEnvOrDefault("DATABASE_URL", ""),

		OpenAIAPIKey:    getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:     getEnvOrDefault("OPENAI_MODEL", "gpt-4.1-mini"),
		OpenAIMaxTokens: getEnvAsIntOrDefault("OPENAI_MAX_TOKENS", 8096),

		GeminiAPIKey:    getEnvOrDefault("GEMINI_API_KEY", ""),
		GeminiBaseURL:   getEnvOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiMaxTokens: getEnvAsIntOrDefault("GEMINI_MAX_TOKENS", 4096),

		ZAIAPIKey:    getEnvOrDefault("ZAI_API_KEY", ""),
		ZAIBaseURL:   getEnvOrDefault("ZAI_BASE_URL", "https://api.z.ai/api/paas/v4"),
		ZAIModel:     getEnvOrDefault("ZAI_MODEL", "glm-4.5v"),
		ZAIMaxTokens: getEnvAsIntOrDefault("ZAI_MAX_TOKENS", 4096),

		UpstreamTimeoutSecs: getEnvAsIntOrDefault("UPSTREAM_TIMEOUT_SECONDS", 120),

		StoragePath: getEnvOrDefault("STORAGE_PATH", "./uploads"),
		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
