package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Rag      RagConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string // empty disables external event publishing
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
	PoolMin    int
	PoolMax    int
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	GeminiApiKey      string
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "ollama" or "huggingface"
	LLMModel          string // e.g. "llama3", "qwen2.5"
	LLMBaseURL        string
}

type RagConfig struct {
	ChunkSize       int
	ChunkOverlap    int
	IngestBatchSize int
	DefaultTopK     int
	MaxAnswerTokens int
	CacheEnabled    bool
	HotCacheBackend string // "memory", "redis" or "" to disable
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			PoolMin:    getEnvAsInt("DB_POOL_MIN", 10),
			PoolMax:    getEnvAsInt("DB_POOL_MAX", 20),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			GeminiApiKey:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			LLMBaseURL:        getEnv("LLM_BASE_URL", ""),
		},
		Rag: RagConfig{
			ChunkSize:       getEnvAsInt("CHUNK_SIZE", 1000),
			ChunkOverlap:    getEnvAsInt("CHUNK_OVERLAP", 200),
			IngestBatchSize: getEnvAsInt("INGEST_BATCH_SIZE", 100),
			DefaultTopK:     getEnvAsInt("DEFAULT_TOP_K", 5),
			MaxAnswerTokens: getEnvAsInt("MAX_ANSWER_TOKENS", 200),
			CacheEnabled:    getEnvAsBool("EMBEDDING_CACHE_ENABLED", true),
			HotCacheBackend: getEnv("HOT_CACHE_BACKEND", "memory"),
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
