package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var envVars = []string{
	"EMBEDDING_VECTOR_SIZE", "EMBEDDING_CACHE_SIZE",
	"LLM_BASE_URL", "LLM_API_KEY", "LLM_MODEL",
	"EMBEDDING_BASE_URL", "EMBEDDING_MODEL_NAME",
	"DB_PATH", "MINUTES_DIR", "QDRANT_URL", "QDRANT_COLLECTION", "API_PORT",
	"TAVILY_API_KEY", "TAVILY_BASE_URL", "TAVILY_SEARCH_DEPTH",
	"RAG_DEFAULT_K", "RAG_STEP_LIMIT", "RETRIEVAL_TIMEOUT",
	"ANSWER_TEMPERATURE", "ANSWER_MAX_TOKENS", "CONTEXT_TOKEN_BUDGET",
	"LOG_LEVEL", "LOG_FORMAT",
}

// isolate clears every variable Load reads and moves into a directory without a .env file.
func isolate(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*testing.T, *Config)
	}{
		{
			name: "defaults with required vector size",
			setupEnv: func(t *testing.T) {
				t.Setenv("EMBEDDING_VECTOR_SIZE", "3072")
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				if cfg.EmbeddingVectorSize != 3072 {
					t.Errorf("EmbeddingVectorSize = %d, want 3072", cfg.EmbeddingVectorSize)
				}
				if cfg.EmbeddingModelName != "text-embedding-3-large" {
					t.Errorf("EmbeddingModelName = %q", cfg.EmbeddingModelName)
				}
				if cfg.EmbeddingCacheSize != 1000 {
					t.Errorf("EmbeddingCacheSize = %d, want 1000", cfg.EmbeddingCacheSize)
				}
				if cfg.DefaultK != 5 || cfg.StepLimit != 10 {
					t.Errorf("DefaultK/StepLimit = %d/%d, want 5/10", cfg.DefaultK, cfg.StepLimit)
				}
				if cfg.RetrievalTimeout != 15*time.Second {
					t.Errorf("RetrievalTimeout = %v, want 15s", cfg.RetrievalTimeout)
				}
				if cfg.AnswerTemperature != 0.3 || cfg.AnswerMaxTokens != 2000 {
					t.Errorf("answer params = %v/%d, want 0.3/2000", cfg.AnswerTemperature, cfg.AnswerMaxTokens)
				}
				if cfg.TavilySearchDepth != "advanced" {
					t.Errorf("TavilySearchDepth = %q, want advanced", cfg.TavilySearchDepth)
				}
				if cfg.WebSearchEnabled() {
					t.Error("WebSearchEnabled() = true without TAVILY_API_KEY")
				}
				if cfg.LogLevel != slog.LevelInfo || cfg.LogFormat != "text" {
					t.Errorf("log = %v/%s, want INFO/text", cfg.LogLevel, cfg.LogFormat)
				}
				if cfg.APIPort != "9000" || cfg.QdrantCollection != "assembly_minutes" {
					t.Errorf("APIPort/QdrantCollection = %s/%s", cfg.APIPort, cfg.QdrantCollection)
				}
			},
		},
		{
			name:     "missing EMBEDDING_VECTOR_SIZE",
			setupEnv: func(t *testing.T) {},
			wantErr:  true,
		},
		{
			name: "invalid EMBEDDING_VECTOR_SIZE",
			setupEnv: func(t *testing.T) {
				t.Setenv("EMBEDDING_VECTOR_SIZE", "invalid")
			},
			wantErr: true,
		},
		{
			name: "zero EMBEDDING_VECTOR_SIZE",
			setupEnv: func(t *testing.T) {
				t.Setenv("EMBEDDING_VECTOR_SIZE", "0")
			},
			wantErr: true,
		},
		{
			name: "negative step limit",
			setupEnv: func(t *testing.T) {
				t.Setenv("EMBEDDING_VECTOR_SIZE", "3072")
				t.Setenv("RAG_STEP_LIMIT", "-1")
			},
			wantErr: true,
		},
		{
			name: "invalid retrieval timeout",
			setupEnv: func(t *testing.T) {
				t.Setenv("EMBEDDING_VECTOR_SIZE", "3072")
				t.Setenv("RETRIEVAL_TIMEOUT", "soon")
			},
			wantErr: true,
		},
		{
			name: "temperature out of range",
			setupEnv: func(t *testing.T) {
				t.Setenv("EMBEDDING_VECTOR_SIZE", "3072")
				t.Setenv("ANSWER_TEMPERATURE", "3.5")
			},
			wantErr: true,
		},
		{
			name: "unknown log format",
			setupEnv: func(t *testing.T) {
				t.Setenv("EMBEDDING_VECTOR_SIZE", "3072")
				t.Setenv("LOG_FORMAT", "xml")
			},
			wantErr: true,
		},
		{
			name: "minutes dir must exist",
			setupEnv: func(t *testing.T) {
				t.Setenv("EMBEDDING_VECTOR_SIZE", "3072")
				t.Setenv("MINUTES_DIR", filepath.Join(t.TempDir(), "missing"))
			},
			wantErr: true,
		},
		{
			name: "custom values",
			setupEnv: func(t *testing.T) {
				t.Setenv("EMBEDDING_VECTOR_SIZE", "1536")
				t.Setenv("LLM_BASE_URL", "http://custom:9090")
				t.Setenv("LLM_MODEL", "custom-model")
				t.Setenv("TAVILY_API_KEY", "tvly-test")
				t.Setenv("MINUTES_DIR", t.TempDir())
				t.Setenv("RAG_DEFAULT_K", "8")
				t.Setenv("RETRIEVAL_TIMEOUT", "2s")
				t.Setenv("LOG_LEVEL", "debug")
				t.Setenv("LOG_FORMAT", "JSON")
				t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "custom", "db.db"))
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				if cfg.LLMBaseURL != "http://custom:9090" || cfg.LLMModelName != "custom-model" {
					t.Errorf("LLM = %s/%s", cfg.LLMBaseURL, cfg.LLMModelName)
				}
				if cfg.EmbeddingBaseURL != "http://custom:9090" {
					t.Errorf("EmbeddingBaseURL = %s, want LLM base URL fallback", cfg.EmbeddingBaseURL)
				}
				if !cfg.WebSearchEnabled() {
					t.Error("WebSearchEnabled() = false with TAVILY_API_KEY set")
				}
				if cfg.DefaultK != 8 || cfg.RetrievalTimeout != 2*time.Second {
					t.Errorf("DefaultK/RetrievalTimeout = %d/%v", cfg.DefaultK, cfg.RetrievalTimeout)
				}
				if cfg.LogLevel != slog.LevelDebug || cfg.LogFormat != "json" {
					t.Errorf("log = %v/%s, want DEBUG/json", cfg.LogLevel, cfg.LogFormat)
				}
				if filepath.Base(cfg.DBPath) != "db.db" {
					t.Errorf("DBPath = %s", cfg.DBPath)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			tt.setupEnv(t)

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			if tt.checkConfig != nil {
				tt.checkConfig(t, cfg)
			}
		})
	}
}

func TestLoad_CreatesDataDirectory(t *testing.T) {
	isolate(t)

	dbPath := filepath.Join(t.TempDir(), "test", "db.db")
	t.Setenv("EMBEDDING_VECTOR_SIZE", "3072")
	t.Setenv("DB_PATH", dbPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if _, err := os.Stat(filepath.Dir(dbPath)); os.IsNotExist(err) {
		t.Errorf("Load() should create data directory: %v", err)
	}
	if cfg.DBPath != dbPath {
		t.Errorf("Load() DBPath = %v, want %v", cfg.DBPath, dbPath)
	}
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	isolate(t)

	dir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	content := "EMBEDDING_VECTOR_SIZE=768\nQDRANT_COLLECTION=from_dotenv\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	// godotenv does not override variables that exist, even when empty.
	_ = os.Unsetenv("EMBEDDING_VECTOR_SIZE")
	_ = os.Unsetenv("QDRANT_COLLECTION")
	t.Cleanup(func() {
		_ = os.Unsetenv("EMBEDDING_VECTOR_SIZE")
		_ = os.Unsetenv("QDRANT_COLLECTION")
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.EmbeddingVectorSize != 768 || cfg.QdrantCollection != "from_dotenv" {
		t.Errorf("Load() = %d/%s, want values from .env", cfg.EmbeddingVectorSize, cfg.QdrantCollection)
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue string
		want         string
	}{
		{name: "env var set", value: "set-value", defaultValue: "default", want: "set-value"},
		{name: "empty env var uses default", value: "", defaultValue: "default", want: "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_ENV_VAR", tt.value)
			if got := getEnv("TEST_ENV_VAR", tt.defaultValue); got != tt.want {
				t.Errorf("getEnv() = %q, want %q", got, tt.want)
			}
		})
	}
}
