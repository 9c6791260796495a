package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8088", cfg.App.Port)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, 20, cfg.Scoring.DefaultOvers)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Live.KafkaBrokers)
	assert.False(t, cfg.Live.KafkaEnabled)
	assert.Equal(t, []string{"scorer", "admin"}, cfg.Auth.ScorerRoles)
	assert.Empty(t, cfg.Auth.ScorerJWTSecret)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("SCORING_DEFAULT_OVERS", "50")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Live.KafkaBrokers)
	assert.Equal(t, 50, cfg.Scoring.DefaultOvers)
	assert.Contains(t, cfg.DSN(), "dbname=crease_db")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mongo" }, "STORAGE_DRIVER"},
		{"overs too high", func(c *Config) { c.Scoring.DefaultOvers = 51 }, "SCORING_DEFAULT_OVERS"},
		{"overs zero", func(c *Config) { c.Scoring.DefaultOvers = 0 }, "SCORING_DEFAULT_OVERS"},
		{"no buffer", func(c *Config) { c.Scoring.DispatchBuffer = 0 }, "SCORING_DISPATCH_BUFFER"},
		{"kafka without brokers", func(c *Config) {
			c.Live.KafkaEnabled = true
			c.Live.KafkaBrokers = nil
		}, "KAFKA_BROKERS"},
		{"production without scorer secret", func(c *Config) { c.App.Env = "production" }, "SCORER_JWT_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.Storage.Driver = StorageMemory
			cfg.Scoring.DefaultOvers = 20
			cfg.Scoring.DispatchBuffer = 8
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
