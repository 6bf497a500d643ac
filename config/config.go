package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"legalprompt-backend/storage"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds all settings read from the environment
type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	SessionStore         string
	DatabaseURL          string
	SessionTTL           time.Duration
	SessionPruneSchedule string

	ChatProvider    string
	CerebrasAPIKey  string
	CerebrasBaseURL string
	CerebrasModel   string
	GeminiAPIKey    string
	GeminiModel     string
	ChatTimeout     time.Duration

	BatchConcurrency int

	Storage storage.StorageConfig
}

// Session store kinds
const (
	SessionStoreMemory   = "memory"
	SessionStorePostgres = "postgres"
)

// Chat provider kinds
const (
	ChatProviderNone     = "none"
	ChatProviderCerebras = "cerebras"
	ChatProviderGemini   = "gemini"
)

// LoadDotEnv loads .env from the working directory, then from the project
// root when run from cmd/<name>/.
func LoadDotEnv(logger *zap.Logger) {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			logger.Warn("no .env file found, using environment variables")
		}
	}
}

// Load reads the configuration from environment variables. Malformed
// numbers and durations fall back to their defaults with a warning.
func Load(logger *zap.Logger) *Config {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := envReader{logger: logger}

	return &Config{
		Port:     e.str("PORT", "8080"),
		GinMode:  e.str("GIN_MODE", ""),
		LogLevel: e.str("LOG_LEVEL", "info"),

		SessionStore:         strings.ToLower(e.str("SESSION_STORE", SessionStoreMemory)),
		DatabaseURL:          e.str("DATABASE_URL", ""),
		SessionTTL:           e.duration("SESSION_TTL", 12*time.Hour),
		SessionPruneSchedule: e.str("SESSION_PRUNE_SCHEDULE", "@every 10m"),

		ChatProvider:    strings.ToLower(e.str("CHAT_PROVIDER", ChatProviderNone)),
		CerebrasAPIKey:  e.str("CEREBRAS_API_KEY", ""),
		CerebrasBaseURL: e.str("CEREBRAS_BASE_URL", "https://api.cerebras.ai/v1"),
		CerebrasModel:   e.str("CEREBRAS_MODEL", "llama-3.3-70b"),
		GeminiAPIKey:    e.str("GEMINI_API_KEY", ""),
		GeminiModel:     e.str("GEMINI_MODEL", "gemini-1.5-flash"),
		ChatTimeout:     e.duration("CHAT_TIMEOUT", 30*time.Second),

		BatchConcurrency: e.positiveInt("BATCH_CONCURRENCY", 4),

		Storage: storage.StorageConfig{
			Type:         storage.StorageType(strings.ToLower(e.str("STORAGE_TYPE", string(storage.StorageTypeLocal)))),
			LocalPath:    e.str("STORAGE_LOCAL_PATH", "./storage/exports"),
			S3Bucket:     e.str("AWS_S3_BUCKET", ""),
			S3Region:     e.str("AWS_REGION", "us-east-1"),
			AWSAccessKey: e.str("AWS_ACCESS_KEY_ID", ""),
			AWSSecretKey: e.str("AWS_SECRET_ACCESS_KEY", ""),
		},
	}
}

type envReader struct {
	logger *zap.Logger
}

func (e envReader) str(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (e envReader) duration(key string, def time.Duration) time.Duration {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		e.logger.Warn("invalid duration, using default",
			zap.String("key", key), zap.String("value", raw), zap.Duration("default", def))
		return def
	}
	return d
}

func (e envReader) positiveInt(key string, def int) int {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		e.logger.Warn("invalid integer, using default",
			zap.String("key", key), zap.String("value", raw), zap.Int("default", def))
		return def
	}
	return n
}

// NewLogger builds a production zap logger at the named level
func NewLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.Level = lvl
	return cfg.Build()
}
