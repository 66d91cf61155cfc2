package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/imrishuroy/ordering-helper-mock/internal/ids"
	"github.com/imrishuroy/ordering-helper-mock/internal/ocr"
)

// Config holds runtime settings for the API and worker binaries.
type Config struct {
	RunLocal            bool
	HTTPAddr            string
	OCRDelay            time.Duration
	IDStrategy          string
	MetricsEnabled      bool
	LogLevel            log.Level
	OrdersQueueURL      string
	CloudWatchNamespace string
}

// DefaultConfig returns the local development defaults.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:       ":3001",
		OCRDelay:       ocr.DefaultDelay,
		IDStrategy:     ids.StrategyClock,
		MetricsEnabled: true,
		LogLevel:       log.InfoLevel,
	}
}

// FromEnv overlays environment variables on DefaultConfig.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()

	if v, ok := lookup("RUN_LOCAL"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("RUN_LOCAL: %w", err)
		}
		cfg.RunLocal = b
	}
	if v, ok := lookup("HTTP_ADDR"); ok && v != "" {
		cfg.HTTPAddr = v
	}
	if v, ok := lookup("OCR_DELAY"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("OCR_DELAY: %w", err)
		}
		if d < 0 {
			return cfg, fmt.Errorf("OCR_DELAY: must not be negative, got %s", d)
		}
		cfg.OCRDelay = d
	}
	if v, ok := lookup("ID_STRATEGY"); ok && v != "" {
		if _, err := ids.New(v); err != nil {
			return cfg, fmt.Errorf("ID_STRATEGY: %w", err)
		}
		cfg.IDStrategy = v
	}
	if v, ok := lookup("METRICS_ENABLED"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("METRICS_ENABLED: %w", err)
		}
		cfg.MetricsEnabled = b
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		lvl, err := log.ParseLevel(v)
		if err != nil {
			return cfg, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = lvl
	}
	if v, ok := lookup("ORDERS_QUEUE_URL"); ok {
		cfg.OrdersQueueURL = v
	}
	if v, ok := lookup("CLOUDWATCH_NAMESPACE"); ok {
		cfg.CloudWatchNamespace = v
	}

	return cfg, nil
}

// NeedsAWS reports whether any AWS-backed notifier is configured.
func (c Config) NeedsAWS() bool {
	return c.OrdersQueueURL != "" || c.CloudWatchNamespace != ""
}
