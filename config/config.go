package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Dataset   DatasetConfig
	Ranking   RankingConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Storage   StorageConfig
	Logging   LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// TrustedProxies lists proxy IPs or CIDRs whose X-Forwarded-For is honored. Empty trusts none.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// DatasetConfig describes the FNDDS nutrient values file
type DatasetConfig struct {
	Path      string `mapstructure:"path"`
	SkipRows  int    `mapstructure:"skip_rows"` // banner rows above the header
	Delimiter string `mapstructure:"delimiter"`
}

// RankingConfig bounds top-N queries. MaxN above 10 widens the interactive limit.
type RankingConfig struct {
	MaxN     int `mapstructure:"max_n"`
	DefaultN int `mapstructure:"default_n"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type string        `mapstructure:"type"` // "memory"
	TTL  time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute, 0 disables
}

// StorageConfig selects where pipeline snapshots go
type StorageConfig struct {
	Sink string `mapstructure:"sink"` // "none", "csv", "sqlite" or "postgres"
	Path string `mapstructure:"path"`
	DSN  string `mapstructure:"dsn"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Debug bool `mapstructure:"debug"`
}

// Target returns the path or DSN the configured sink writes to
func (s StorageConfig) Target() string {
	if s.Sink == "postgres" {
		return s.DSN
	}
	return s.Path
}

// DelimiterRune returns the dataset delimiter as a rune
func (d DatasetConfig) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(d.Delimiter)
	return r
}

// Load loads configuration from .env, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/nutritool/")

	// NUTRITOOL_DATASET_PATH -> dataset.path
	v.SetEnvPrefix("NUTRITOOL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads ./.env if present. Variables already set in the environment win.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(".env")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})
	v.SetDefault("server.trusted_proxies", []string{})

	// Dataset defaults
	v.SetDefault("dataset.path", "./assets/FNDDS Nutrient Values.csv")
	v.SetDefault("dataset.skip_rows", 1)
	v.SetDefault("dataset.delimiter", ",")

	// Ranking defaults
	v.SetDefault("ranking.max_n", 10)
	v.SetDefault("ranking.default_n", 5)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "1h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)

	// Storage defaults
	v.SetDefault("storage.sink", "none")
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.dsn", "")

	v.SetDefault("logging.debug", false)
}

// validate validates the configuration
func validate(config *Config) error {
	for _, proxy := range config.Server.TrustedProxies {
		if net.ParseIP(proxy) == nil {
			if _, _, err := net.ParseCIDR(proxy); err != nil {
				return fmt.Errorf("server trusted_proxies entry must be an IP or CIDR, got: %s", proxy)
			}
		}
	}

	if config.Dataset.Path == "" {
		return fmt.Errorf("dataset path is required (set NUTRITOOL_DATASET_PATH)")
	}

	if config.Dataset.SkipRows < 0 {
		return fmt.Errorf("dataset skip_rows must not be negative, got: %d", config.Dataset.SkipRows)
	}

	if utf8.RuneCountInString(config.Dataset.Delimiter) != 1 {
		return fmt.Errorf("dataset delimiter must be a single character, got: %q", config.Dataset.Delimiter)
	}

	if config.Ranking.MaxN < 1 {
		return fmt.Errorf("ranking max_n must be at least 1, got: %d", config.Ranking.MaxN)
	}

	if config.Ranking.DefaultN < 1 || config.Ranking.DefaultN > config.Ranking.MaxN {
		return fmt.Errorf("ranking default_n must be between 1 and %d, got: %d", config.Ranking.MaxN, config.Ranking.DefaultN)
	}

	if config.Cache.Type != "memory" {
		return fmt.Errorf("cache type must be 'memory', got: %s", config.Cache.Type)
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("ratelimit per_ip must not be negative, got: %d", config.RateLimit.PerIP)
	}

	switch config.Storage.Sink {
	case "none":
	case "csv", "sqlite":
		if config.Storage.Path == "" {
			return fmt.Errorf("storage path is required when sink is '%s'", config.Storage.Sink)
		}
	case "postgres":
		if config.Storage.DSN == "" {
			return fmt.Errorf("storage DSN is required when sink is 'postgres'")
		}
	default:
		return fmt.Errorf("storage sink must be 'none', 'csv', 'sqlite' or 'postgres', got: %s", config.Storage.Sink)
	}

	return nil
}
