package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "FRONTEND_URL", "LOG_LEVEL", "DATABASE_URL", "JWT_SECRET", "JWT_EXPIRES_IN",
		"REDIS_ADDR", "REDIS_URI", "REDIS_URL", "MONGO_URI", "MONGO_DB", "GCS_BUCKET", "GCS_CREDENTIALS_FILE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/jobboard")
	t.Setenv("JWT_SECRET", "secret")

	a, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", a.Port)
	assert.Equal(t, "http://localhost:5173", a.FrontendURL)
	assert.Equal(t, 7*24*time.Hour, a.JWTExpiresIn)
	assert.False(t, a.RedisEnabled())
	assert.False(t, a.MongoEnabled())
	assert.False(t, a.GCSEnabled())
}

func TestLoadRequiresDatabaseAndSecret(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadOptionalInfrastructure(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/jobboard")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_EXPIRES_IN", "12h")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("GCS_BUCKET", "uploads")

	a, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 12*time.Hour, a.JWTExpiresIn)
	assert.Equal(t, "redis://localhost:6379/0", a.RedisURL)
	assert.True(t, a.MongoEnabled())
	assert.Equal(t, "jobboard", a.MongoDB)
	assert.True(t, a.GCSEnabled())
}

func TestLoadRejectsBadExpiry(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/jobboard")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_EXPIRES_IN", "soon")

	_, err := Load()
	assert.Error(t, err)
}
