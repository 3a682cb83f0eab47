package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL string // FRONTDESK_DATABASE_URL (required)
	HTTPAddr    string // FRONTDESK_HTTP_ADDR (default ":8080")
	NATSURL     string // FRONTDESK_NATS_URL (optional, empty = no events)
	AuthToken   string // FRONTDESK_AUTH_TOKEN (optional, empty = auth disabled)

	// Inference settings
	OpenAIAPIKey  string        // FRONTDESK_OPENAI_API_KEY (required to classify)
	OpenAIBaseURL string        // FRONTDESK_OPENAI_BASE_URL (default "https://api.openai.com/v1")
	OpenAIModel   string        // FRONTDESK_OPENAI_MODEL (default "gpt-4o-mini")
	OpenAITimeout time.Duration // FRONTDESK_OPENAI_TIMEOUT (default 60s)

	// ClassifyConcurrency caps the classification fan-out per run.
	// 0 launches one call per request with no cap.
	ClassifyConcurrency int // FRONTDESK_CLASSIFY_CONCURRENCY (default 0)

	// Export settings
	ExportInterval   time.Duration // FRONTDESK_EXPORT_INTERVAL (default 0 = disabled)
	ExportS3Bucket   string        // FRONTDESK_EXPORT_S3_BUCKET (enables S3 when set)
	ExportS3Endpoint string        // FRONTDESK_EXPORT_S3_ENDPOINT (custom endpoint for MinIO)
	ExportS3Region   string        // FRONTDESK_EXPORT_S3_REGION (default "us-east-1")
	ExportS3Key      string        // FRONTDESK_EXPORT_S3_KEY (default "frontdesk/analysis.jsonl")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:      os.Getenv("FRONTDESK_DATABASE_URL"),
		HTTPAddr:         envOrDefault("FRONTDESK_HTTP_ADDR", ":8080"),
		NATSURL:          os.Getenv("FRONTDESK_NATS_URL"),
		AuthToken:        os.Getenv("FRONTDESK_AUTH_TOKEN"),
		OpenAIAPIKey:     os.Getenv("FRONTDESK_OPENAI_API_KEY"),
		OpenAIBaseURL:    envOrDefault("FRONTDESK_OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:      envOrDefault("FRONTDESK_OPENAI_MODEL", "gpt-4o-mini"),
		ExportS3Bucket:   os.Getenv("FRONTDESK_EXPORT_S3_BUCKET"),
		ExportS3Endpoint: os.Getenv("FRONTDESK_EXPORT_S3_ENDPOINT"),
		ExportS3Region:   envOrDefault("FRONTDESK_EXPORT_S3_REGION", "us-east-1"),
		ExportS3Key:      envOrDefault("FRONTDESK_EXPORT_S3_KEY", "frontdesk/analysis.jsonl"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("FRONTDESK_DATABASE_URL is required")
	}

	timeout, err := time.ParseDuration(envOrDefault("FRONTDESK_OPENAI_TIMEOUT", "60s"))
	if err != nil {
		return nil, fmt.Errorf("FRONTDESK_OPENAI_TIMEOUT: %w", err)
	}
	c.OpenAITimeout = timeout

	if v := os.Getenv("FRONTDESK_CLASSIFY_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("FRONTDESK_CLASSIFY_CONCURRENCY: invalid value %q", v)
		}
		c.ClassifyConcurrency = n
	}

	if v := os.Getenv("FRONTDESK_EXPORT_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("FRONTDESK_EXPORT_INTERVAL: %w", err)
		}
		c.ExportInterval = d
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
