package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGO_DB", "SYNC_PHONE_DELAY", "SYNC_BRAND_DELAY"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "phoneflip", cfg.MongoDB)
	assert.Equal(t, 300*time.Millisecond, cfg.PhoneDelay)
	assert.Equal(t, 1500*time.Millisecond, cfg.BrandDelay)
}

func TestGetDuration(t *testing.T) {
	t.Setenv("TEST_DELAY", "2s")
	assert.Equal(t, 2*time.Second, getDuration("TEST_DELAY", time.Minute))

	t.Setenv("TEST_DELAY", "250")
	assert.Equal(t, 250*time.Millisecond, getDuration("TEST_DELAY", time.Minute), "bare numbers are milliseconds")

	t.Setenv("TEST_DELAY", "nonsense")
	assert.Equal(t, time.Minute, getDuration("TEST_DELAY", time.Minute))
}

func TestGetEnvFallback(t *testing.T) {
	t.Setenv("TEST_KEY", "")
	assert.Equal(t, "fallback", getEnv("TEST_KEY", "fallback"))

	t.Setenv("TEST_KEY", "set")
	assert.Equal(t, "set", getEnv("TEST_KEY", "fallback"))
}
