package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	Ai          AIConfig
	Recommender RecommenderConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type AIConfig struct {
	LLMProvider       string // "ollama" or "openrouter"
	LLMModel          string // e.g. "llama3", "qwen/qwen3-30b-a3b:free"
	OllamaBaseURL     string
	OpenRouterBaseURL string
	OpenRouterAPIKey  string
	RequestTimeoutSec int // overall budget per recommendation request
}

type RecommenderConfig struct {
	ModelPath           string // pretrained ranker dump
	DatasetPath         string // historical event log snapshot (CSV)
	DescriptionCacheDir string
	CommitTopic         string
	CommitEvents        bool // append new events to the shared log after serving
	StrictCategories    bool // reject unseen categorical values instead of treating them as missing
	DefaultK            int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "openrouter"),
			LLMModel:          getEnv("LLM_MODEL", "qwen/qwen3-30b-a3b:free"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
			RequestTimeoutSec: getEnvAsInt("LLM_REQUEST_TIMEOUT_SECONDS", 120),
		},
		Recommender: RecommenderConfig{
			ModelPath:           getEnv("RANKER_MODEL_PATH", "./ranker.json"),
			DatasetPath:         getEnv("EVENT_DATASET_PATH", "./events.csv"),
			DescriptionCacheDir: getEnv("SPEC_CACHE_DIR", "./spec_cache"),
			CommitTopic:         getEnv("COMMIT_EVENTS_TOPIC_NAME", "COMMIT_EVENTS"),
			CommitEvents:        getEnvAsBool("COMMIT_EVENTS", true),
			StrictCategories:    getEnvAsBool("STRICT_CATEGORIES", false),
			DefaultK:            getEnvAsInt("DEFAULT_K", 5),
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
