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
	SMTP     SMTPConfig
	Keys     APIKeys
	Ai       AIConfig
	Chat     ChatConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host         string
	Port         int
	Email        string
	Password     string
	SenderName   string
	SupportInbox string
}

type APIKeys struct {
	GoogleGemini string
	EmbedTopic   string // Catalog chunk embedding topic
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaEmbedModel  string
	LLMProvider       string // "ollama", "gemini"
	LLMModel          string // e.g. "llama3", "gemini-2.5-flash"
	ClassifyTimeout   time.Duration
	GenerateTimeout   time.Duration
}

type ChatConfig struct {
	CatalogPath    string
	SessionTimeout time.Duration
	HistoryLimit   int
	ChunkSize      int
	ChunkOverlap   int
	RetrievalTopK  int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:         getEnv("SMTP_HOST", ""),
			Port:         getEnvAsInt("SMTP_PORT", 587),
			Email:        getEnv("SMTP_EMAIL", ""),
			Password:     getEnv("SMTP_PASSWORD", ""),
			SenderName:   getEnv("SMTP_SENDER_NAME", "TechGear Support"),
			SupportInbox: getEnv("SUPPORT_INBOX", "support@techgear.com"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GEMINI_API_KEY", ""),
			EmbedTopic:   getEnv("EMBED_CATALOG_TOPIC_NAME", "EMBED_CATALOG_CHUNK"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbedModel:  getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:          getEnv("LLM_MODEL", "gemini-2.5-flash"),
			ClassifyTimeout:   getEnvAsDuration("CLASSIFY_TIMEOUT", 10*time.Second),
			GenerateTimeout:   getEnvAsDuration("GENERATE_TIMEOUT", 30*time.Second),
		},
		Chat: ChatConfig{
			CatalogPath:    getEnv("CATALOG_PATH", "product_info.txt"),
			SessionTimeout: getEnvAsDuration("SESSION_TIMEOUT", 30*time.Minute),
			HistoryLimit:   getEnvAsInt("SESSION_HISTORY_LIMIT", 10),
			ChunkSize:      getEnvAsInt("CHUNK_SIZE", 500),
			ChunkOverlap:   getEnvAsInt("CHUNK_OVERLAP", 50),
			RetrievalTopK:  getEnvAsInt("RETRIEVAL_TOP_K", 4),
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

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
