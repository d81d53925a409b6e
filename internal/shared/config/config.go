package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AIGateway holds the external AI service endpoints. The base URL is always
// configuration, never a literal in the calling code.
type AIGateway struct {
	BaseURL        string
	ExtractPath    string
	RecommendPath  string
	SimilarityPath string
	Timeout        time.Duration
}

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	// The profile store and the analytics store are independently
	// transacted and may live on different servers.
	ProfileDatabaseURL   string
	AnalyticsDatabaseURL string

	AI AIGateway

	// Archival copy of uploaded resume binaries. The database row stays
	// canonical; the object store is best-effort.
	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	profileURL := os.Getenv("PROFILE_DATABASE_URL")
	analyticsURL := os.Getenv("ANALYTICS_DATABASE_URL")

	if env == "production" {
		if profileURL == "" {
			log.Printf("PROFILE_DATABASE_URL is required in production")
		}
		if analyticsURL == "" {
			log.Printf("ANALYTICS_DATABASE_URL is required in production")
		}
	}

	return Config{
		Port:                 getEnv("PORT", "8080"),
		Env:                  env,
		CORSAllowOrigin:      splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ProfileDatabaseURL:   profileURL,
		AnalyticsDatabaseURL: analyticsURL,
		AI: AIGateway{
			BaseURL:        getEnv("AI_BASE_URL", ""),
			ExtractPath:    getEnv("AI_EXTRACT_PATH", "/extract"),
			RecommendPath:  getEnv("AI_RECOMMEND_PATH", "/recommend"),
			SimilarityPath: getEnv("AI_SIMILARITY_PATH", "/recomendersystem"),
			Timeout:        secondsEnv("AI_TIMEOUT_SECONDS", 30*time.Second),
		},
		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func secondsEnv(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		log.Printf("config env %s invalid seconds value %q", key, raw)
		return def
	}
	return time.Duration(parsed) * time.Second
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
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
