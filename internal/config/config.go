package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Store backends
const (
	BackendMemory    = "memory"
	BackendRedis     = "redis"
	BackendCassandra = "cassandra"
	BackendNone      = "none"
)

// Config holds all configuration for the application
type Config struct {
	Host           string
	Port           string
	LogLevel       string
	StoreBackend   string
	SessionTTL     time.Duration
	RequestTimeout time.Duration
	RateLimit      int // requests per minute per client IP, 0 disables
	Redis          RedisConfig
	Cassandra      CassandraConfig
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CassandraConfig holds Cassandra-specific configuration
type CassandraConfig struct {
	Hosts       []string
	Keyspace    string
	Username    string
	Password    string
	Consistency string
	Timeout     time.Duration
}

// fileConfig is the optional YAML overlay named by SKILL_CONFIG_FILE.
// Every value is a default that the matching environment variable overrides.
type fileConfig struct {
	Host           string `yaml:"host,omitempty"`
	Port           string `yaml:"port,omitempty"`
	LogLevel       string `yaml:"logLevel,omitempty"`
	StoreBackend   string `yaml:"storeBackend,omitempty"`
	SessionTTL     string `yaml:"sessionTTLSeconds,omitempty"`
	RequestTimeout string `yaml:"requestTimeoutSeconds,omitempty"`
	RateLimit      string `yaml:"rateLimitPerMinute,omitempty"`
	Redis          struct {
		Addr     string `yaml:"addr,omitempty"`
		Password string `yaml:"password,omitempty"`
		DB       string `yaml:"db,omitempty"`
	} `yaml:"redis,omitempty"`
	Cassandra struct {
		Hosts       string `yaml:"hosts,omitempty"`
		Keyspace    string `yaml:"keyspace,omitempty"`
		Username    string `yaml:"username,omitempty"`
		Password    string `yaml:"password,omitempty"`
		Consistency string `yaml:"consistency,omitempty"`
		Timeout     string `yaml:"timeoutSeconds,omitempty"`
	} `yaml:"cassandra,omitempty"`
}

// env maps the file values onto the environment keys they default
func (f *fileConfig) env() map[string]string {
	return map[string]string{
		"HOST":                      f.Host,
		"PORT":                      f.Port,
		"LOG_LEVEL":                 f.LogLevel,
		"STORE_BACKEND":             f.StoreBackend,
		"SESSION_TTL_SECONDS":       f.SessionTTL,
		"REQUEST_TIMEOUT_SECONDS":   f.RequestTimeout,
		"RATE_LIMIT_PER_MINUTE":     f.RateLimit,
		"REDIS_ADDR":                f.Redis.Addr,
		"REDIS_PASSWORD":            f.Redis.Password,
		"REDIS_DB":                  f.Redis.DB,
		"CASSANDRA_HOSTS":           f.Cassandra.Hosts,
		"CASSANDRA_KEYSPACE":        f.Cassandra.Keyspace,
		"CASSANDRA_USERNAME":        f.Cassandra.Username,
		"CASSANDRA_PASSWORD":        f.Cassandra.Password,
		"CASSANDRA_CONSISTENCY":     f.Cassandra.Consistency,
		"CASSANDRA_TIMEOUT_SECONDS": f.Cassandra.Timeout,
	}
}

// Load loads configuration from environment variables, layered over the
// YAML file named by SKILL_CONFIG_FILE when set.
func Load() (*Config, error) {
	defaults := map[string]string{}
	if path := os.Getenv("SKILL_CONFIG_FILE"); path != "" {
		fc, err := readFile(path)
		if err != nil {
			return nil, err
		}
		defaults = fc.env()
	}
	lookup := func(key, defaultValue string) string {
		if v := defaults[key]; v != "" {
			defaultValue = v
		}
		return getEnv(key, defaultValue)
	}

	host := lookup("HOST", "0.0.0.0")
	port := lookup("PORT", "8080")
	logLevel := lookup("LOG_LEVEL", "info")

	storeBackend := strings.ToLower(lookup("STORE_BACKEND", BackendMemory))
	switch storeBackend {
	case BackendMemory, BackendRedis, BackendCassandra, BackendNone:
	default:
		return nil, fmt.Errorf("invalid STORE_BACKEND value: %q", storeBackend)
	}

	// Session TTL (0 = no expiration)
	sessionTTL, err := seconds("SESSION_TTL_SECONDS", lookup("SESSION_TTL_SECONDS", "3600"))
	if err != nil {
		return nil, err
	}

	requestTimeout, err := seconds("REQUEST_TIMEOUT_SECONDS", lookup("REQUEST_TIMEOUT_SECONDS", "5"))
	if err != nil {
		return nil, err
	}
	if requestTimeout == 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive")
	}

	rateLimit, err := strconv.Atoi(lookup("RATE_LIMIT_PER_MINUTE", "600"))
	if err != nil || rateLimit < 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE value: %q", lookup("RATE_LIMIT_PER_MINUTE", "600"))
	}

	// Redis configuration
	redisDB, err := strconv.Atoi(lookup("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	// Cassandra configuration
	cassandraTimeout, err := seconds("CASSANDRA_TIMEOUT_SECONDS", lookup("CASSANDRA_TIMEOUT_SECONDS", "5"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Host:           host,
		Port:           port,
		LogLevel:       logLevel,
		StoreBackend:   storeBackend,
		SessionTTL:     sessionTTL,
		RequestTimeout: requestTimeout,
		RateLimit:      rateLimit,
		Redis: RedisConfig{
			Addr:     lookup("REDIS_ADDR", "localhost:6379"),
			Password: lookup("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Cassandra: CassandraConfig{
			Hosts:       parseHosts(lookup("CASSANDRA_HOSTS", "localhost:9042")),
			Keyspace:    lookup("CASSANDRA_KEYSPACE", "hello_buttons"),
			Username:    lookup("CASSANDRA_USERNAME", ""),
			Password:    lookup("CASSANDRA_PASSWORD", ""),
			Consistency: strings.ToUpper(lookup("CASSANDRA_CONSISTENCY", "QUORUM")),
			Timeout:     cassandraTimeout,
		},
	}, nil
}

// Address returns the full address (host:port)
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func readFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &fc, nil
}

// seconds parses a non-negative whole number of seconds
func seconds(key, value string) (time.Duration, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid %s value: must not be negative", key)
	}
	return time.Duration(n) * time.Second, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseHosts parses a comma-separated list of hosts
func parseHosts(hostsStr string) []string {
	parts := strings.Split(hostsStr, ",")
	hosts := make([]string, 0, len(parts))
	for _, part := range parts {
		host := strings.TrimSpace(part)
		if host != "" {
			hosts = append(hosts, host)
		}
	}
	if len(hosts) == 0 {
		return []string{"localhost:9042"}
	}
	return hosts
}
