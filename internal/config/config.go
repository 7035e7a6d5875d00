package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Brain    BrainConfig
	Keys     APIKeys
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JWTSecret          string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	OpenAI          string
	AssetEmbedTopic string // watermill topic for asset embedding
}

type AIConfig struct {
	EmbeddingProvider string // "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "ollama" or "openai"
	LLMModel          string // e.g. "llama3", "gpt-4o-mini"
	OpenAIBaseURL     string
	RequestTimeout    time.Duration
	MaxRetries        int
}

// BrainConfig carries the decision-engine feature toggles that are not
// per-request: defaults apply when the client omits the flags.
type BrainConfig struct {
	SourceToVideoEnabled   bool
	ComponentLookupEnabled bool
	PageAnalyzerBaseURL    string
	SourceAnalyzerBaseURL  string
	ComponentLookupBaseURL string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			OpenAI:          getEnv("OPENAI_API_KEY", ""),
			AssetEmbedTopic: getEnv("EMBED_ASSET_TOPIC_NAME", "EMBED_MEDIA_ASSET"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
			RequestTimeout:    getEnvAsDuration("LLM_REQUEST_TIMEOUT", 45*time.Second),
			MaxRetries:        getEnvAsInt("LLM_MAX_RETRIES", 2),
		},
		Brain: BrainConfig{
			SourceToVideoEnabled:   getEnvAsBool("BRAIN_SOURCE_TO_VIDEO_ENABLED", false),
			ComponentLookupEnabled: getEnvAsBool("BRAIN_COMPONENT_LOOKUP_ENABLED", false),
			PageAnalyzerBaseURL:    getEnv("PAGE_ANALYZER_BASE_URL", ""),
			SourceAnalyzerBaseURL:  getEnv("SOURCE_ANALYZER_BASE_URL", ""),
			ComponentLookupBaseURL: getEnv("COMPONENT_LOOKUP_BASE_URL", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
