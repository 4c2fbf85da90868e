// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Data sources the catalogs can be built from.
const (
	SourceFixtures = "fixtures" // embedded JSON, or FIXTURES_DIR when set
	SourcePostgres = "postgres" // documents table, seeded from fixtures when empty
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Dataset
	DataSource  string
	FixturesDir string // empty means the fixtures compiled into the binary

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache and sessions)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// S3-compatible object storage for original photos
	S3Endpoint      string
	S3Region        string
	S3AccessKey     string
	S3SecretKey     string
	S3BucketPublic  string
	S3BucketPrivate string
	S3PublicURL     string

	// Forum
	DevMemberPassword string // assigned to fixture members in development
	ForumWriteLimit   int    // posts and replies per member per minute
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DataSource:  envOrDefault("DATA_SOURCE", SourceFixtures),
		FixturesDir: os.Getenv("FIXTURES_DIR"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "bonsaisite"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "bonsaisite"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		S3Endpoint:      os.Getenv("S3_ENDPOINT"),
		S3Region:        envOrDefault("S3_REGION", "fsn1"),
		S3AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:     os.Getenv("S3_SECRET_KEY"),
		S3BucketPublic:  envOrDefault("S3_BUCKET_PUBLIC", "bonsaisite-public"),
		S3BucketPrivate: envOrDefault("S3_BUCKET_PRIVATE", "bonsaisite-private"),
		S3PublicURL:     os.Getenv("S3_PUBLIC_URL"),

		DevMemberPassword: os.Getenv("DEV_MEMBER_PASSWORD"),
	}

	limit, err := strconv.Atoi(envOrDefault("FORUM_WRITE_LIMIT", "10"))
	if err != nil || limit < 1 {
		return nil, fmt.Errorf("FORUM_WRITE_LIMIT must be a positive integer")
	}
	cfg.ForumWriteLimit = limit

	switch cfg.DataSource {
	case SourceFixtures, SourcePostgres:
	default:
		return nil, fmt.Errorf("DATA_SOURCE must be %q or %q, got %q", SourceFixtures, SourcePostgres, cfg.DataSource)
	}

	if cfg.Env == "production" && cfg.UsesPostgres() {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// UsesPostgres reports whether the catalogs load from the document store.
func (c *Config) UsesPostgres() bool {
	return c.DataSource == SourcePostgres
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
