package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/hupe1980/prost/persistence"
)

// config is read from the environment after an optional .env file.
type config struct {
	Dir          string // PROSTDIR: location of the sequence cache
	EmbedURL     string // PROST_EMBED_URL
	EmbedToken   string // PROST_EMBED_TOKEN
	EmbedTimeout time.Duration
	Compression  persistence.Compression
	LogLevel     slog.Level
	LogJSON      bool

	MemoryLimit int64 // PROST_MEMORY_LIMIT, bytes
	IOLimit     int64 // PROST_IO_LIMIT, bytes per second

	CommitTable string // PROST_DDB_TABLE: DynamoDB commit table for s3:// locations

	MinioAccessKey string
	MinioSecretKey string
	MinioSecure    bool
}

func loadConfig(envFiles ...string) (config, error) {
	// A missing .env is not an error; existing variables win.
	_ = godotenv.Load(envFiles...)

	cfg := config{
		Dir:            os.Getenv("PROSTDIR"),
		EmbedURL:       os.Getenv("PROST_EMBED_URL"),
		EmbedToken:     os.Getenv("PROST_EMBED_TOKEN"),
		CommitTable:    os.Getenv("PROST_DDB_TABLE"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		LogLevel:       slog.LevelInfo,
	}
	if cfg.Dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("PROSTDIR not set: %w", err)
		}
		cfg.Dir = filepath.Join(home, ".config", "prost")
	}

	var err error
	if cfg.EmbedTimeout, err = envDuration("PROST_EMBED_TIMEOUT", 5*time.Minute); err != nil {
		return cfg, err
	}
	if cfg.MemoryLimit, err = envInt("PROST_MEMORY_LIMIT"); err != nil {
		return cfg, err
	}
	if cfg.IOLimit, err = envInt("PROST_IO_LIMIT"); err != nil {
		return cfg, err
	}
	if v := os.Getenv("MINIO_SECURE"); v != "" {
		if cfg.MinioSecure, err = strconv.ParseBool(v); err != nil {
			return cfg, fmt.Errorf("MINIO_SECURE: %w", err)
		}
	}

	cfg.Compression = persistence.DefaultCompression
	if v := os.Getenv("PROST_COMPRESSION"); v != "" {
		if cfg.Compression, err = persistence.ParseCompression(v); err != nil {
			return cfg, err
		}
	}

	if v := os.Getenv("PROST_LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return cfg, fmt.Errorf("PROST_LOG_LEVEL: %w", err)
		}
	}
	cfg.LogJSON = strings.EqualFold(os.Getenv("PROST_LOG_FORMAT"), "json")

	return cfg, nil
}

func envInt(key string) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
