package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL          string
	LLMModelName        string
	LLMAPIKey           string
	EmbeddingBaseURL    string
	EmbeddingModelName  string
	EmbeddingVectorSize int
	EmbeddingCacheSize  int
	DBPath              string
	MinutesDir          string
	QdrantURL           string
	QdrantCollection    string
	TavilyAPIKey        string
	TavilyBaseURL       string
	TavilySearchDepth   string
	DefaultK            int
	StepLimit           int
	RetrievalTimeout    time.Duration
	AnswerTemperature   float32
	AnswerMaxTokens     int
	ContextTokenBudget  int
	APIPort             string
	LogLevel            slog.Level
	LogFormat           string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or a parent directory, it is loaded first;
// variables already present in the environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	llmBaseURL := getEnv("LLM_BASE_URL", "https://api.openai.com")

	cfg := &Config{
		LLMBaseURL:         llmBaseURL,
		LLMModelName:       getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMAPIKey:          getEnv("LLM_API_KEY", ""),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", llmBaseURL),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "text-embedding-3-large"),
		DBPath:             getEnv("DB_PATH", "./data/assembly-rag.db"),
		MinutesDir:         getEnv("MINUTES_DIR", ""),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "assembly_minutes"),
		TavilyAPIKey:       getEnv("TAVILY_API_KEY", ""),
		TavilyBaseURL:      getEnv("TAVILY_BASE_URL", "https://api.tavily.com"),
		TavilySearchDepth:  getEnv("TAVILY_SEARCH_DEPTH", "advanced"),
		APIPort:            getEnv("API_PORT", "9000"),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	// Must match the embedding model's output size; 3072 for text-embedding-3-large.
	// Changing it requires recreating the Qdrant collection.
	vectorSizeStr := getEnv("EMBEDDING_VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("EMBEDDING_VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("EMBEDDING_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("EMBEDDING_VECTOR_SIZE must be greater than 0")
	}
	cfg.EmbeddingVectorSize = vectorSize

	if cfg.EmbeddingCacheSize, err = getPositiveInt("EMBEDDING_CACHE_SIZE", 1000); err != nil {
		return nil, err
	}
	if cfg.DefaultK, err = getPositiveInt("RAG_DEFAULT_K", 5); err != nil {
		return nil, err
	}
	if cfg.StepLimit, err = getPositiveInt("RAG_STEP_LIMIT", 10); err != nil {
		return nil, err
	}
	if cfg.AnswerMaxTokens, err = getPositiveInt("ANSWER_MAX_TOKENS", 2000); err != nil {
		return nil, err
	}
	if cfg.ContextTokenBudget, err = getPositiveInt("CONTEXT_TOKEN_BUDGET", 12000); err != nil {
		return nil, err
	}

	timeout, err := time.ParseDuration(getEnv("RETRIEVAL_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("RETRIEVAL_TIMEOUT must be a valid duration: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("RETRIEVAL_TIMEOUT must be greater than 0")
	}
	cfg.RetrievalTimeout = timeout

	temperature, err := strconv.ParseFloat(getEnv("ANSWER_TEMPERATURE", "0.3"), 32)
	if err != nil {
		return nil, fmt.Errorf("ANSWER_TEMPERATURE must be a valid number: %w", err)
	}
	if temperature < 0 || temperature > 2 {
		return nil, fmt.Errorf("ANSWER_TEMPERATURE must be between 0 and 2")
	}
	cfg.AnswerTemperature = float32(temperature)

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if cfg.MinutesDir != "" {
		info, err := os.Stat(cfg.MinutesDir)
		if err != nil {
			return nil, fmt.Errorf("MINUTES_DIR is not accessible: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("MINUTES_DIR must be a directory: %s", cfg.MinutesDir)
		}
	}

	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// WebSearchEnabled reports whether an external search credential is configured.
func (c *Config) WebSearchEnabled() bool {
	return c.TavilyAPIKey != ""
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getPositiveInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return v, nil
}
