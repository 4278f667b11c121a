package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"lynx/internal/domain/shared/money"
)

// State backends for favorites, graphs and report templates.
const (
	StateBackendFile  = "file"
	StateBackendMongo = "mongo"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env                string
	HTTPAddr           string
	WorkbookPath       string
	FavoritesFile      string
	GraphsFile         string
	TemplatesFile      string
	FXRate             money.Rate
	BookingCommission  float64
	StateBackend       string
	MongoURI           string
	MongoDB            string
	KafkaBrokers       []string
	KafkaTopicPrefix   string
	InstanceID         string
	IdempotencyTTL     time.Duration
	OutboxPollInterval time.Duration
	RetryBackoff       []time.Duration
	SlowQueryThreshold time.Duration
	ExportEnabled      bool
	S3Endpoint         string
	S3PublicEndpoint   string
	S3AccessKey        string
	S3SecretKey        string
	S3Bucket           string
	S3UseSSL           bool
	CORSAllowedOrigins []string
}

// Default returns the configuration used when the environment is unusable.
func Default() Config {
	host, _ := os.Hostname()
	return Config{
		Env:                "dev",
		HTTPAddr:           ":8080",
		WorkbookPath:       "Lynx_Tracker.xlsx",
		FavoritesFile:      "custom_metrics.json",
		GraphsFile:         "custom_graphs.json",
		TemplatesFile:      "report_templates.json",
		FXRate:             money.DefaultRate,
		BookingCommission:  money.DefaultBookingCommission,
		StateBackend:       StateBackendFile,
		MongoDB:            "lynx",
		InstanceID:         host,
		IdempotencyTTL:     24 * time.Hour,
		OutboxPollInterval: 500 * time.Millisecond,
		RetryBackoff:       []time.Duration{time.Second, 5 * time.Second, 30 * time.Second},
		SlowQueryThreshold: 500 * time.Millisecond,
		S3Endpoint:         "http://localhost:9000",
		S3PublicEndpoint:   "http://localhost:9000",
		S3AccessKey:        "minioadmin",
		S3SecretKey:        "minioadmin",
		S3Bucket:           "lynx-reports",
	}
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	def := Default()
	cfg := Config{
		Env:              getEnv("APP_ENV", def.Env),
		HTTPAddr:         getEnv("HTTP_ADDR", def.HTTPAddr),
		WorkbookPath:     getEnv("WORKBOOK_PATH", def.WorkbookPath),
		FavoritesFile:    getEnv("CUSTOM_METRICS_FILE", def.FavoritesFile),
		GraphsFile:       getEnv("CUSTOM_GRAPHS_FILE", def.GraphsFile),
		TemplatesFile:    getEnv("REPORT_TEMPLATES_FILE", def.TemplatesFile),
		StateBackend:     strings.ToLower(getEnv("STATE_BACKEND", def.StateBackend)),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          getEnv("MONGO_DB", def.MongoDB),
		KafkaTopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", ""),
		InstanceID:       getEnv("INSTANCE_ID", def.InstanceID),
		S3Endpoint:       getEnv("S3_ENDPOINT", def.S3Endpoint),
		S3PublicEndpoint: getEnv("S3_PUBLIC_ENDPOINT", ""),
		S3AccessKey:      getEnv("S3_ACCESS_KEY", def.S3AccessKey),
		S3SecretKey:      getEnv("S3_SECRET_KEY", def.S3SecretKey),
		S3Bucket:         getEnv("S3_BUCKET", def.S3Bucket),
	}
	cfg.KafkaBrokers = splitList(getEnv("KAFKA_BROKERS", ""))
	cfg.CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", ""))

	rate, err := parseFloatEnv("FX_RATE", float64(def.FXRate))
	if err != nil {
		return Config{}, err
	}
	if cfg.FXRate, err = money.NewRate(rate); err != nil {
		return Config{}, fmt.Errorf("invalid FX_RATE: %w", err)
	}
	if cfg.BookingCommission, err = parseFloatEnv("BOOKING_COMMISSION", def.BookingCommission); err != nil {
		return Config{}, err
	}
	if cfg.BookingCommission < 0 || cfg.BookingCommission >= 1 {
		return Config{}, fmt.Errorf("invalid BOOKING_COMMISSION %v: must be in [0, 1)", cfg.BookingCommission)
	}

	if cfg.IdempotencyTTL, err = parseDurationEnv("IDEMP_TTL", def.IdempotencyTTL); err != nil {
		return Config{}, err
	}
	if cfg.OutboxPollInterval, err = parseDurationEnv("OUTBOX_POLL_INTERVAL", def.OutboxPollInterval); err != nil {
		return Config{}, err
	}
	if cfg.SlowQueryThreshold, err = parseDurationEnv("SLOW_QUERY_THRESHOLD", def.SlowQueryThreshold); err != nil {
		return Config{}, err
	}

	retryStr := getEnv("RETRY_BACKOFF", "1s,5s,30s")
	for _, raw := range strings.Split(retryStr, ",") {
		val := strings.TrimSpace(raw)
		if val == "" {
			continue
		}
		d, err := time.ParseDuration(val)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RETRY_BACKOFF component %q: %w", raw, err)
		}
		cfg.RetryBackoff = append(cfg.RetryBackoff, d)
	}

	if cfg.S3UseSSL, err = parseBoolEnv("S3_USE_SSL", false); err != nil {
		return Config{}, err
	}
	if cfg.ExportEnabled, err = parseBoolEnv("EXPORT_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.S3PublicEndpoint == "" {
		cfg.S3PublicEndpoint = cfg.S3Endpoint
	}

	switch cfg.StateBackend {
	case StateBackendFile:
	case StateBackendMongo:
		if cfg.MongoURI == "" {
			return Config{}, fmt.Errorf("MONGO_URI is required when STATE_BACKEND=%s", StateBackendMongo)
		}
	default:
		return Config{}, fmt.Errorf("invalid STATE_BACKEND %q: want %s or %s", cfg.StateBackend, StateBackendFile, StateBackendMongo)
	}
	if cfg.WorkbookPath == "" {
		return Config{}, fmt.Errorf("WORKBOOK_PATH is required")
	}
	return cfg, nil
}

// EventsEnabled reports whether domain events leave the process. Publishing
// needs the Mongo outbox and a Kafka cluster.
func (c Config) EventsEnabled() bool {
	return c.MongoURI != "" && len(c.KafkaBrokers) > 0
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseFloatEnv(key string, def float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s number: %w", key, err)
	}
	return v, nil
}

func parseBoolEnv(key string, def bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "yes", "y", "on":
		return true, nil
	case "0", "f", "false", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid %s boolean: %q", key, raw)
	}
}
