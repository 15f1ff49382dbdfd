package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co/")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "app_session_id", cfg.Session.CookieName)
	assert.Equal(t, 720*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "https://abc.supabase.co", cfg.Storage.URL)
	assert.Equal(t, "service-key", cfg.Storage.ServiceKey)
	assert.Equal(t, "videos", cfg.Storage.Bucket)
	assert.Equal(t, "https://abc.supabase.co", cfg.Identity.URL)
	assert.Equal(t, int64(2<<30), cfg.Upload.MaxSize)
	assert.Equal(t, 30*time.Minute, cfg.Upload.SignedURLTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("ENV", "production")
	t.Setenv("STORAGE_URL", "https://store.example.com")
	t.Setenv("IDENTITY_URL", "https://id.example.com")
	t.Setenv("MAX_UPLOAD_SIZE", "1024")
	t.Setenv("SIGNED_URL_TTL", "not-a-duration")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("OWNER_OPEN_ID", "owner@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://store.example.com", cfg.Storage.URL)
	assert.Equal(t, "https://id.example.com", cfg.Identity.URL)
	assert.Equal(t, int64(1024), cfg.Upload.MaxSize)
	assert.Equal(t, 30*time.Minute, cfg.Upload.SignedURLTTL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, "owner@example.com", cfg.OwnerOpenID)
}

func TestLoad_MissingSecretPanics(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	assert.Panics(t, func() { _, _ = Load() })
}
