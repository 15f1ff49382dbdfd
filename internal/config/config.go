package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultMaxUploadSize int64 = 2 << 30

type Config struct {
	Port        string
	Env         string
	LogLevel    string
	DatabaseURL string

	DBConnectTimeout time.Duration
	CORSOrigins      []string

	Session  SessionConfig
	Storage  StorageConfig
	Identity IdentityConfig
	Upload   UploadConfig

	// OwnerOpenID is always promoted to admin when the user row is upserted.
	OwnerOpenID string
}

type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
}

type StorageConfig struct {
	URL        string
	ServiceKey string
	Bucket     string
}

type IdentityConfig struct {
	URL    string
	APIKey string
}

type UploadConfig struct {
	MaxSize      int64
	SignedURLTTL time.Duration
	KeyPrefix    string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "720h"))
	if err != nil {
		sessionTTL = 720 * time.Hour
	}

	signedURLTTL, err := time.ParseDuration(getEnv("SIGNED_URL_TTL", "30m"))
	if err != nil {
		signedURLTTL = 30 * time.Minute
	}

	connectTimeout, err := time.ParseDuration(getEnv("DB_CONNECT_TIMEOUT", "1m"))
	if err != nil {
		connectTimeout = time.Minute
	}

	maxUpload, err := strconv.ParseInt(getEnv("MAX_UPLOAD_SIZE", strconv.FormatInt(defaultMaxUploadSize, 10)), 10, 64)
	if err != nil || maxUpload <= 0 {
		maxUpload = defaultMaxUploadSize
	}

	storageURL := strings.TrimRight(getEnv("STORAGE_URL", getEnv("SUPABASE_URL", "")), "/")
	serviceKey := getEnv("STORAGE_SERVICE_KEY", getEnv("SUPABASE_SERVICE_ROLE_KEY", ""))

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		DBConnectTimeout: connectTimeout,
		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "*")),

		Session: SessionConfig{
			Secret:     getEnvOrPanic("SESSION_SECRET"),
			CookieName: getEnv("SESSION_COOKIE_NAME", "app_session_id"),
			TTL:        sessionTTL,
		},
		Storage: StorageConfig{
			URL:        storageURL,
			ServiceKey: serviceKey,
			Bucket:     getEnv("STORAGE_BUCKET", "videos"),
		},
		Identity: IdentityConfig{
			URL:    strings.TrimRight(getEnv("IDENTITY_URL", storageURL), "/"),
			APIKey: getEnv("IDENTITY_API_KEY", getEnv("SUPABASE_ANON_KEY", serviceKey)),
		},
		Upload: UploadConfig{
			MaxSize:      maxUpload,
			SignedURLTTL: signedURLTTL,
			KeyPrefix:    getEnv("UPLOAD_KEY_PREFIX", "videos"),
		},

		OwnerOpenID: getEnv("OWNER_OPEN_ID", ""),
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvOrPanic(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		panic("required environment variable not set: " + key)
	}
	return value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
