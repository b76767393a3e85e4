package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsAndEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("BOOKING_SLOT_DURATION", "20m")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 20*time.Minute, cfg.Booking.SlotDuration)
	assert.Equal(t, 90, cfg.Booking.MaxRangeDays)
	assert.Equal(t, 30, cfg.Booking.DefaultRangeDays)
	assert.Equal(t, time.Hour, cfg.JWT.AccessExpiry)
	assert.Equal(t, "visit_history", cfg.Mongo.Collection)
	assert.Equal(t, time.UTC, cfg.App.Location())
}

func TestLoadConfig_DotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "JWT_SECRET=from-file\nAPP_PORT=9090\nAPP_TIMEZONE=Asia/Jakarta\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "Asia/Jakarta", cfg.App.Location().String())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:     AppConfig{Timezone: "UTC"},
			JWT:     JWTConfig{Secret: "x"},
			Booking: BookingConfig{SlotDuration: 30 * time.Minute, MaxRangeDays: 90, DefaultRangeDays: 30},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing secret", func(c *Config) { c.JWT.Secret = "" }, true},
		{"zero slot", func(c *Config) { c.Booking.SlotDuration = 0 }, true},
		{"slot not dividing a day", func(c *Config) { c.Booking.SlotDuration = 7 * time.Minute }, true},
		{"sub-minute slot", func(c *Config) { c.Booking.SlotDuration = 90 * time.Second }, true},
		{"default beyond max", func(c *Config) { c.Booking.DefaultRangeDays = 120 }, true},
		{"bad timezone", func(c *Config) { c.App.Timezone = "Mars/Olympus" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
