package config

import (
	"os"
	"strconv"

	"github.com/adilg123/huffman-compression-tool/internal/compression"
	"github.com/adilg123/huffman-compression-tool/internal/compression/algorithms/huffman"
)

const defaultMaxFileSize = 50 * 1024 * 1024 // 50MB

// Config holds the application configuration
type Config struct {
	Port             string
	Environment      string
	MaxFileSize      int64 // in bytes
	DefaultAlgorithm string
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      getEnv("GO_ENV", "development"),
		MaxFileSize:      getEnvInt64("MAX_FILE_SIZE", defaultMaxFileSize),
		DefaultAlgorithm: compression.AlgorithmHuffman,
	}

	if format, err := huffman.ParsePayloadFormat(os.Getenv("HUFFMAN_PAYLOAD")); err == nil && format == huffman.PayloadPacked {
		cfg.DefaultAlgorithm = compression.AlgorithmHuffmanPacked
	}

	return cfg
}

// IsProduction reports whether GO_ENV selects production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt64 parses a positive integer environment variable, falling back
// to defaultValue when it is unset or invalid
func getEnvInt64(key string, defaultValue int64) int64 {
	value, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
