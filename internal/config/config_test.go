package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("STORAGE", " Memory ")
	t.Setenv("ACCESS_TOKEN_TTL", "0")
	t.Setenv("REFRESH_TOKEN_TTL", "3")

	require.NoError(t, Load())

	assert.Equal(t, "memory", AppEnv.Storage)
	assert.Equal(t, "8080", AppEnv.Port)
	assert.Equal(t, 20*time.Minute, AppEnv.AccessTokenTTL)
	assert.Equal(t, 72*time.Hour, AppEnv.RefreshTokenTTL)
	assert.Equal(t, 720*time.Hour, AppEnv.CartTTL)
}

func TestLoadRejectsMalformedBool(t *testing.T) {
	t.Setenv("MONGO_TRANSACTIONS", "sometimes")
	assert.Error(t, Load())
}
