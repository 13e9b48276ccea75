package config

import (
	"log/slog"
	"os"
	"testing"
)

// setEnv sets an environment variable, ignoring errors (for test setup)
func setEnv(key, value string) {
	_ = os.Setenv(key, value)
}

// unsetEnv unsets an environment variable, ignoring errors (for test cleanup)
func unsetEnv(key string) {
	_ = os.Unsetenv(key)
}

func TestLoad(t *testing.T) {
	// Save original env vars
	originalEnv := make(map[string]string)
	envVars := []string{
		"QDRANT_VECTOR_SIZE", "RETRIEVAL_TOP_K", "RETRIEVAL_POOL",
		"LLM_BASE_URL", "LLM_API_KEY", "LLM_MODEL",
		"EMBEDDING_BASE_URL", "EMBEDDING_MODEL_NAME", "SERPER_API_KEY",
		"DB_PATH", "SEED_DIR", "QDRANT_URL", "QDRANT_COLLECTION", "API_PORT",
		"LOG_LEVEL", "LOG_FORMAT",
	}
	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
		unsetEnv(key)
	}
	defer func() {
		for key, value := range originalEnv {
			if value != "" {
				setEnv(key, value)
			} else {
				unsetEnv(key)
			}
		}
	}()

	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name: "valid config with required fields",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", t.TempDir()+"/test.db")
				setEnv("QDRANT_VECTOR_SIZE", "768")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.QdrantVectorSize == 768 &&
					cfg.QdrantCollection == "blogs" &&
					cfg.APIPort == "9000" &&
					cfg.RetrievalTopK == 5 &&
					cfg.RetrievalPool == 50 &&
					cfg.LogLevel == slog.LevelInfo &&
					cfg.LogFormat == "text"
			},
		},
		{
			name: "missing QDRANT_VECTOR_SIZE",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", t.TempDir()+"/test.db")
			},
			wantErr: true,
		},
		{
			name: "invalid QDRANT_VECTOR_SIZE",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", t.TempDir()+"/test.db")
				setEnv("QDRANT_VECTOR_SIZE", "invalid")
			},
			wantErr: true,
		},
		{
			name: "zero QDRANT_VECTOR_SIZE",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", t.TempDir()+"/test.db")
				setEnv("QDRANT_VECTOR_SIZE", "0")
			},
			wantErr: true,
		},
		{
			name: "custom retrieval knobs",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", t.TempDir()+"/test.db")
				setEnv("QDRANT_VECTOR_SIZE", "768")
				setEnv("RETRIEVAL_TOP_K", "3")
				setEnv("RETRIEVAL_POOL", "100")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.RetrievalTopK == 3 && cfg.RetrievalPool == 100
			},
		},
		{
			name: "negative RETRIEVAL_TOP_K",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", t.TempDir()+"/test.db")
				setEnv("QDRANT_VECTOR_SIZE", "768")
				setEnv("RETRIEVAL_TOP_K", "-1")
			},
			wantErr: true,
		},
		{
			name: "invalid LOG_LEVEL",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", t.TempDir()+"/test.db")
				setEnv("QDRANT_VECTOR_SIZE", "768")
				setEnv("LOG_LEVEL", "verbose")
			},
			wantErr: true,
		},
		{
			name: "invalid LOG_FORMAT",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", t.TempDir()+"/test.db")
				setEnv("QDRANT_VECTOR_SIZE", "768")
				setEnv("LOG_FORMAT", "xml")
			},
			wantErr: true,
		},
		{
			name: "json log format with debug level",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", t.TempDir()+"/test.db")
				setEnv("QDRANT_VECTOR_SIZE", "768")
				setEnv("LOG_LEVEL", "debug")
				setEnv("LOG_FORMAT", "json")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.LogLevel == slog.LevelDebug && cfg.LogFormat == "json"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range envVars {
				unsetEnv(key)
			}
			tt.setupEnv(t)

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Error("Load() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config validation failed: %+v", cfg)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"ERROR", slog.LevelError, false},
		{"trace", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseLogLevel(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseLogLevel(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLogLevel(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
