package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// RecommendConfig tunes the recommendation engine. Weights are configuration
// rather than constants so the ranking policy can be retuned without code
// changes.
type RecommendConfig struct {
	TopN            int
	PriceWeight     float64
	FeatureWeight   float64
	CategoryWeight  float64
	HighScore       float64
	MediumScore     float64
	MinCompleteness float64
}

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string
	DatabaseURL     string

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string

	AssistantProvider string
	AssistantModel    string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	UIRedirectURL      string

	AdminEmails []string

	Recommend RecommendConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		Env:             env,
		DatabaseURL:     dbURL,

		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),

		AssistantProvider: getEnv("ASSISTANT_PROVIDER", "none"),
		AssistantModel:    getEnv("ASSISTANT_MODEL", ""),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		UIRedirectURL:      getEnv("UI_REDIRECT_URL", ""),

		AdminEmails: splitAndTrim(getEnv("ADMIN_EMAILS", "")),

		Recommend: RecommendConfig{
			TopN:            getEnvInt("REC_TOP_N", 5),
			PriceWeight:     getEnvFloat("REC_PRICE_WEIGHT", 45),
			FeatureWeight:   getEnvFloat("REC_FEATURE_WEIGHT", 25),
			CategoryWeight:  getEnvFloat("REC_CATEGORY_WEIGHT", 30),
			HighScore:       getEnvFloat("REC_HIGH_SCORE", 80),
			MediumScore:     getEnvFloat("REC_MEDIUM_SCORE", 60),
			MinCompleteness: getEnvFloat("REC_MIN_COMPLETENESS", 0.5),
		},
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if v, err := strconv.Atoi(raw); err == nil && v > 0 {
		return v
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
		return v
	}
	return def
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
