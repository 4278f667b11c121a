package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lynx/internal/domain/shared/money"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STATE_BACKEND", "")
	t.Setenv("FX_RATE", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, money.DefaultRate, cfg.FXRate)
	assert.InDelta(t, 0.12, cfg.BookingCommission, 1e-9)
	assert.Equal(t, StateBackendFile, cfg.StateBackend)
	assert.Equal(t, []time.Duration{time.Second, 5 * time.Second, 30 * time.Second}, cfg.RetryBackoff)
	assert.Equal(t, cfg.S3Endpoint, cfg.S3PublicEndpoint)
	assert.False(t, cfg.ExportEnabled)
	assert.False(t, cfg.EventsEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("WORKBOOK_PATH", "/data/tracker.xlsx")
	t.Setenv("FX_RATE", "61.7")
	t.Setenv("BOOKING_COMMISSION", "0.15")
	t.Setenv("STATE_BACKEND", "Mongo")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("EXPORT_ENABLED", "yes")
	t.Setenv("IDEMP_TTL", "2h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/data/tracker.xlsx", cfg.WorkbookPath)
	assert.Equal(t, money.Rate(61.7), cfg.FXRate)
	assert.InDelta(t, 0.15, cfg.BookingCommission, 1e-9)
	assert.Equal(t, StateBackendMongo, cfg.StateBackend)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.ExportEnabled)
	assert.Equal(t, 2*time.Hour, cfg.IdempotencyTTL)
	assert.True(t, cfg.EventsEnabled())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"non-numeric rate":        {"FX_RATE": "abc"},
		"zero rate":               {"FX_RATE": "0"},
		"commission out of range": {"BOOKING_COMMISSION": "1.2"},
		"unknown backend":         {"STATE_BACKEND": "redis"},
		"mongo without uri":       {"STATE_BACKEND": "mongo", "MONGO_URI": ""},
		"bad duration":            {"IDEMP_TTL": "soon"},
		"bad bool":                {"EXPORT_ENABLED": "maybe"},
		"bad backoff":             {"RETRY_BACKOFF": "1s,later"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
