package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default server port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Relevance.DefaultLimit != 10 {
		t.Errorf("default limit = %d, want 10", cfg.Relevance.DefaultLimit)
	}
	if cfg.Relevance.Stemmer != "suffix" {
		t.Errorf("default stemmer = %q, want suffix", cfg.Relevance.Stemmer)
	}
	if cfg.Kafka.Enabled {
		t.Error("kafka ingestion should be disabled by default")
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte(`
server:
  port: 9000
redis:
  addr: redis.internal:6379
relevance:
  defaultLimit: 3
  stemmer: snowball
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) returned error: %v", path, err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("server port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Redis.Addr != "redis.internal:6379" {
		t.Errorf("redis addr = %q, want redis.internal:6379", cfg.Redis.Addr)
	}
	if cfg.Redis.CacheTTL != 60*time.Second {
		t.Errorf("cache ttl = %v, want default 60s", cfg.Redis.CacheTTL)
	}
	if cfg.Relevance.Stemmer != "snowball" {
		t.Errorf("stemmer = %q, want snowball", cfg.Relevance.Stemmer)
	}
	// untouched sections keep their defaults
	if cfg.Postgres.Port != 5432 {
		t.Errorf("postgres port = %d, want default 5432", cfg.Postgres.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Fatal("Load of missing file succeeded, want error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RD_SERVER_PORT", "7777")
	t.Setenv("RD_REDIS_ADDR", "override:6379")
	t.Setenv("RD_RELEVANCE_STEMMER", "snowball")
	t.Setenv("RD_KAFKA_ENABLED", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("server port = %d, want 7777", cfg.Server.Port)
	}
	if cfg.Redis.Addr != "override:6379" {
		t.Errorf("redis addr = %q, want override", cfg.Redis.Addr)
	}
	if cfg.Relevance.Stemmer != "snowball" {
		t.Errorf("stemmer = %q, want snowball", cfg.Relevance.Stemmer)
	}
	if !cfg.Kafka.Enabled {
		t.Error("kafka enabled override not applied")
	}
}
