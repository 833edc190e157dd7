package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	GroqAPIKey         string
	GroqModel          string
	GroqBaseURL        string
	GroqTimeoutSeconds int

	TesseractCmd string
	PdftoppmCmd  string
	OCRLanguages []string

	MaxUploadBytes int64
	RateLimitRPS   int
	StoreCap       int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	for _, path := range []string{".env", "cmd/.env"} {
		_ = godotenv.Load(path)
	}

	return Config{
		Port:               getEnv("PORT", "8080"),
		Env:                normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin:    splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		GroqAPIKey:         os.Getenv("GROQ_API_KEY"),
		GroqModel:          getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		GroqBaseURL:        getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqTimeoutSeconds: getEnvInt("GROQ_TIMEOUT_SECONDS", 120),
		TesseractCmd:       getEnv("TESSERACT_CMD", "tesseract"),
		PdftoppmCmd:        getEnv("PDFTOPPM_CMD", "pdftoppm"),
		OCRLanguages:       splitAndTrim(getEnv("OCR_LANGUAGES", "eng")),
		MaxUploadBytes:     int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),
		RateLimitRPS:       getEnvInt("RATE_LIMIT_RPS", 10),
		StoreCap:           getEnvInt("STORE_CAP", 100),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
