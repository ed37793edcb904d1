package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	JWTSecret  string

	// Advisor backends: Gemini is used when an API key is present,
	// otherwise a remote advisor URL, otherwise the offline mock.
	GeminiAPIKey   string
	GeminiModel    string
	AdvisorBaseURL string
	AdvisorAPIKey  string

	ToolsFile  string
	ListenAddr string
}

func LoadConfig() Config {
	// Absent .env is fine, system environment still applies.
	_ = godotenv.Load()

	return Config{
		DBUser:         getEnv("DB_USER", ""),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBHost:         getEnv("DB_HOST", ""),
		DBPort:         getEnv("DB_PORT", ""),
		DBName:         getEnv("DB_NAME", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", ""),
		AdvisorBaseURL: getEnv("ADVISOR_BASE_URL", ""),
		AdvisorAPIKey:  getEnv("ADVISOR_API_KEY", ""),
		ToolsFile:      getEnv("TOOLS_FILE", ""),
		ListenAddr:     getEnv("LISTEN_ADDR", ":8000"),
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}
