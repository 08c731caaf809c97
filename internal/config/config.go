package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Ai        AIConfig
	Assistant AssistantConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	PipelineLogPath    string
	CorsAllowedOrigins string
	RedisURL           string
}

type AIConfig struct {
	LLMProvider    string // "ollama" or "deepseek"
	LLMModel       string // e.g. "llama3", "deepseek-chat"
	OllamaBaseURL  string
	DeepseekAPIKey string
	EmbeddingModel string
}

type AssistantConfig struct {
	DefaultSessionID string
	SessionStore     string // "redis" or "memory"
	PlatformDocPath  string
	TranslateAPIURL  string
	WhisperAPIURL    string
	WhisperModel     string
	IndexTopic       string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			PipelineLogPath:    getEnv("PIPELINE_LOG_PATH", "logs/pipeline.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Ai: AIConfig{
			LLMProvider:    getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:       getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			DeepseekAPIKey: getEnv("DEEPSEEK_API_KEY", ""),
			EmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
		},
		Assistant: AssistantConfig{
			DefaultSessionID: getEnv("DEFAULT_SESSION_ID", "user_main"),
			SessionStore:     getEnv("SESSION_STORE", "redis"),
			PlatformDocPath:  getEnv("PLATFORM_DOC_PATH", "data/adv/site_info.txt"),
			TranslateAPIURL:  getEnv("TRANSLATE_API_URL", ""),
			WhisperAPIURL:    getEnv("WHISPER_API_URL", ""),
			WhisperModel:     getEnv("WHISPER_MODEL", "small"),
			IndexTopic:       getEnv("INDEX_DOCUMENT_TOPIC_NAME", "INDEX_PLATFORM_DOCUMENT"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
