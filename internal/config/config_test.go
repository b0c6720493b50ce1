package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

var allKeys = []string{
	"HOST", "PORT", "LOG_LEVEL", "STORE_BACKEND", "SESSION_TTL_SECONDS",
	"REQUEST_TIMEOUT_SECONDS", "RATE_LIMIT_PER_MINUTE", "REDIS_ADDR",
	"REDIS_PASSWORD", "REDIS_DB", "CASSANDRA_HOSTS", "CASSANDRA_KEYSPACE",
	"CASSANDRA_USERNAME", "CASSANDRA_PASSWORD", "CASSANDRA_CONSISTENCY",
	"CASSANDRA_TIMEOUT_SECONDS", "SKILL_CONFIG_FILE",
}

// clearEnv blanks every key Load reads; getEnv treats empty as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Address() != "0.0.0.0:8080" {
		t.Errorf("Expected address 0.0.0.0:8080, got %s", cfg.Address())
	}
	if cfg.StoreBackend != BackendMemory {
		t.Errorf("Expected memory backend, got %s", cfg.StoreBackend)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("Expected 1h TTL, got %v", cfg.SessionTTL)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("Expected 5s request timeout, got %v", cfg.RequestTimeout)
	}
	if cfg.RateLimit != 600 {
		t.Errorf("Expected rate limit 600, got %d", cfg.RateLimit)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.DB != 0 {
		t.Errorf("Unexpected redis config: %+v", cfg.Redis)
	}
	if !reflect.DeepEqual(cfg.Cassandra.Hosts, []string{"localhost:9042"}) {
		t.Errorf("Unexpected cassandra hosts: %v", cfg.Cassandra.Hosts)
	}
	if cfg.Cassandra.Consistency != "QUORUM" || cfg.Cassandra.Keyspace != "hello_buttons" {
		t.Errorf("Unexpected cassandra config: %+v", cfg.Cassandra)
	}
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("SESSION_TTL_SECONDS", "0")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CASSANDRA_HOSTS", " c1:9042, ,c2:9042 ")
	t.Setenv("CASSANDRA_CONSISTENCY", "local_one")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if cfg.StoreBackend != BackendRedis {
		t.Errorf("Expected redis backend, got %s", cfg.StoreBackend)
	}
	if cfg.SessionTTL != 0 {
		t.Errorf("Expected no TTL, got %v", cfg.SessionTTL)
	}
	if cfg.Redis.DB != 3 {
		t.Errorf("Expected redis db 3, got %d", cfg.Redis.DB)
	}
	if !reflect.DeepEqual(cfg.Cassandra.Hosts, []string{"c1:9042", "c2:9042"}) {
		t.Errorf("Unexpected cassandra hosts: %v", cfg.Cassandra.Hosts)
	}
	if cfg.Cassandra.Consistency != "LOCAL_ONE" {
		t.Errorf("Expected LOCAL_ONE, got %s", cfg.Cassandra.Consistency)
	}
	if cfg.RateLimit != 0 {
		t.Errorf("Expected rate limiting disabled, got %d", cfg.RateLimit)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"STORE_BACKEND", "postgres"},
		{"SESSION_TTL_SECONDS", "soon"},
		{"SESSION_TTL_SECONDS", "-1"},
		{"REQUEST_TIMEOUT_SECONDS", "0"},
		{"RATE_LIMIT_PER_MINUTE", "-5"},
		{"REDIS_DB", "zero"},
		{"CASSANDRA_TIMEOUT_SECONDS", "1.5"},
		{"SKILL_CONFIG_FILE", "/nonexistent/skill.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_FileOverlay(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "skill.yaml")
	content := `
port: "7000"
storeBackend: cassandra
sessionTTLSeconds: "60"
redis:
  addr: redis.internal:6379
cassandra:
  hosts: a:9042,b:9042
  keyspace: buttons
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SKILL_CONFIG_FILE", path)
	t.Setenv("PORT", "7100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "7100" {
		t.Errorf("Expected env to override file port, got %s", cfg.Port)
	}
	if cfg.StoreBackend != BackendCassandra {
		t.Errorf("Expected cassandra backend from file, got %s", cfg.StoreBackend)
	}
	if cfg.SessionTTL != time.Minute {
		t.Errorf("Expected 1m TTL from file, got %v", cfg.SessionTTL)
	}
	if cfg.Redis.Addr != "redis.internal:6379" {
		t.Errorf("Expected redis addr from file, got %s", cfg.Redis.Addr)
	}
	if !reflect.DeepEqual(cfg.Cassandra.Hosts, []string{"a:9042", "b:9042"}) || cfg.Cassandra.Keyspace != "buttons" {
		t.Errorf("Unexpected cassandra config: %+v", cfg.Cassandra)
	}
	if cfg.Host != "0.0.0.0" {
		t.Errorf("Expected default host, got %s", cfg.Host)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "skill.yaml")
	if err := os.WriteFile(path, []byte("port: [unterminated"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SKILL_CONFIG_FILE", path)

	if _, err := Load(); err == nil {
		t.Error("Expected parse error")
	}
}
