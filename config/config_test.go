package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if len(cfg.Server.TrustedProxies) != 0 {
			t.Errorf("Server.TrustedProxies = %v, want none", cfg.Server.TrustedProxies)
		}
		if cfg.Dataset.Path != "./assets/FNDDS Nutrient Values.csv" {
			t.Errorf("Dataset.Path = %s, want ./assets/FNDDS Nutrient Values.csv", cfg.Dataset.Path)
		}
		if cfg.Dataset.SkipRows != 1 {
			t.Errorf("Dataset.SkipRows = %d, want 1", cfg.Dataset.SkipRows)
		}
		if cfg.Dataset.DelimiterRune() != ',' {
			t.Errorf("Dataset.DelimiterRune() = %q, want ','", cfg.Dataset.DelimiterRune())
		}
		if cfg.Ranking.MaxN != 10 {
			t.Errorf("Ranking.MaxN = %d, want 10", cfg.Ranking.MaxN)
		}
		if cfg.Ranking.DefaultN != 5 {
			t.Errorf("Ranking.DefaultN = %d, want 5", cfg.Ranking.DefaultN)
		}
		if cfg.Cache.Type != "memory" {
			t.Errorf("Cache.Type = %s, want memory", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 120 {
			t.Errorf("RateLimit.PerIP = %d, want 120", cfg.RateLimit.PerIP)
		}
		if cfg.Storage.Sink != "none" {
			t.Errorf("Storage.Sink = %s, want none", cfg.Storage.Sink)
		}
		if cfg.Logging.Debug {
			t.Errorf("Logging.Debug = true, want false")
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		t.Setenv("NUTRITOOL_SERVER_PORT", "9090")
		t.Setenv("NUTRITOOL_SERVER_ENVIRONMENT", "production")
		t.Setenv("NUTRITOOL_DATASET_PATH", "/data/fndds.tsv")
		t.Setenv("NUTRITOOL_DATASET_SKIP_ROWS", "0")
		t.Setenv("NUTRITOOL_DATASET_DELIMITER", "\t")
		t.Setenv("NUTRITOOL_RANKING_MAX_N", "25")
		t.Setenv("NUTRITOOL_RANKING_DEFAULT_N", "20")
		t.Setenv("NUTRITOOL_CACHE_TTL", "24h")
		t.Setenv("NUTRITOOL_RATELIMIT_PER_IP", "0")
		t.Setenv("NUTRITOOL_STORAGE_SINK", "sqlite")
		t.Setenv("NUTRITOOL_STORAGE_PATH", "/tmp/snapshots.db")
		t.Setenv("NUTRITOOL_LOGGING_DEBUG", "true")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Dataset.Path != "/data/fndds.tsv" {
			t.Errorf("Dataset.Path = %s, want /data/fndds.tsv", cfg.Dataset.Path)
		}
		if cfg.Dataset.SkipRows != 0 {
			t.Errorf("Dataset.SkipRows = %d, want 0", cfg.Dataset.SkipRows)
		}
		if cfg.Dataset.DelimiterRune() != '\t' {
			t.Errorf("Dataset.DelimiterRune() = %q, want tab", cfg.Dataset.DelimiterRune())
		}
		if cfg.Ranking.MaxN != 25 {
			t.Errorf("Ranking.MaxN = %d, want 25", cfg.Ranking.MaxN)
		}
		if cfg.Ranking.DefaultN != 20 {
			t.Errorf("Ranking.DefaultN = %d, want 20", cfg.Ranking.DefaultN)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 0 {
			t.Errorf("RateLimit.PerIP = %d, want 0", cfg.RateLimit.PerIP)
		}
		if cfg.Storage.Target() != "/tmp/snapshots.db" {
			t.Errorf("Storage.Target() = %s, want /tmp/snapshots.db", cfg.Storage.Target())
		}
		if !cfg.Logging.Debug {
			t.Errorf("Logging.Debug = false, want true")
		}
	})

	t.Run("fails validation when default_n exceeds max_n", func(t *testing.T) {
		t.Setenv("NUTRITOOL_RANKING_DEFAULT_N", "11")

		_, err := Load()
		if err == nil {
			t.Fatal("Load() error = nil, want error for default_n above max_n")
		}
		if err.Error() != "invalid configuration: ranking default_n must be between 1 and 10, got: 11" {
			t.Errorf("Load() error = %v", err)
		}
	})

	t.Run("fails validation for postgres sink without DSN", func(t *testing.T) {
		t.Setenv("NUTRITOOL_STORAGE_SINK", "postgres")

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing DSN")
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	chdirTemp := func(t *testing.T) {
		t.Helper()
		originalDir, _ := os.Getwd()
		t.Cleanup(func() { os.Chdir(originalDir) })
		os.Chdir(t.TempDir())
	}

	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		chdirTemp(t)

		if err := loadEnvFile(); err != nil {
			t.Errorf("loadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("loads variables and skips comments", func(t *testing.T) {
		chdirTemp(t)

		envContent := `
# Comment line
NUTRITOOL_TEST_VAR_1=value1
   # indented comment

NUTRITOOL_TEST_VAR_2=value2
# NUTRITOOL_TEST_COMMENTED=should_not_load
`
		if err := os.WriteFile(".env", []byte(envContent), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}
		t.Cleanup(func() {
			os.Unsetenv("NUTRITOOL_TEST_VAR_1")
			os.Unsetenv("NUTRITOOL_TEST_VAR_2")
		})

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("NUTRITOOL_TEST_VAR_1") != "value1" {
			t.Errorf("NUTRITOOL_TEST_VAR_1 = %s, want value1", os.Getenv("NUTRITOOL_TEST_VAR_1"))
		}
		if os.Getenv("NUTRITOOL_TEST_VAR_2") != "value2" {
			t.Errorf("NUTRITOOL_TEST_VAR_2 = %s, want value2", os.Getenv("NUTRITOOL_TEST_VAR_2"))
		}
		if os.Getenv("NUTRITOOL_TEST_COMMENTED") != "" {
			t.Errorf("NUTRITOOL_TEST_COMMENTED should not be loaded from comment")
		}
	})

	t.Run("doesn't override existing environment variables", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("NUTRITOOL_TEST_OVERRIDE", "existing-value")

		if err := os.WriteFile(".env", []byte("NUTRITOOL_TEST_OVERRIDE=new-value"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if got := os.Getenv("NUTRITOOL_TEST_OVERRIDE"); got != "existing-value" {
			t.Errorf("NUTRITOOL_TEST_OVERRIDE = %s, want existing-value (should not override)", got)
		}
	})

	t.Run("dataset path from .env reaches Load", func(t *testing.T) {
		chdirTemp(t)
		t.Cleanup(func() { os.Unsetenv("NUTRITOOL_DATASET_PATH") })

		if err := os.WriteFile(".env", []byte("NUTRITOOL_DATASET_PATH=/srv/fndds.csv\n"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Dataset.Path != "/srv/fndds.csv" {
			t.Errorf("Dataset.Path = %s, want /srv/fndds.csv", cfg.Dataset.Path)
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Dataset: DatasetConfig{Path: "foods.csv", SkipRows: 1, Delimiter: ","},
			Ranking: RankingConfig{MaxN: 10, DefaultN: 5},
			Cache:   CacheConfig{Type: "memory"},
			Storage: StorageConfig{Sink: "none"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid defaults", mutate: func(c *Config) {}, wantErr: false},
		{name: "empty dataset path", mutate: func(c *Config) { c.Dataset.Path = "" }, wantErr: true},
		{name: "negative skip rows", mutate: func(c *Config) { c.Dataset.SkipRows = -1 }, wantErr: true},
		{name: "multi-character delimiter", mutate: func(c *Config) { c.Dataset.Delimiter = ",;" }, wantErr: true},
		{name: "empty delimiter", mutate: func(c *Config) { c.Dataset.Delimiter = "" }, wantErr: true},
		{name: "max_n zero", mutate: func(c *Config) { c.Ranking.MaxN = 0 }, wantErr: true},
		{name: "default_n zero", mutate: func(c *Config) { c.Ranking.DefaultN = 0 }, wantErr: true},
		{name: "widened max_n", mutate: func(c *Config) { c.Ranking.MaxN = 50 }, wantErr: false},
		{name: "unknown cache type", mutate: func(c *Config) { c.Cache.Type = "redis" }, wantErr: true},
		{name: "negative rate limit", mutate: func(c *Config) { c.RateLimit.PerIP = -1 }, wantErr: true},
		{name: "csv sink without path", mutate: func(c *Config) { c.Storage.Sink = "csv" }, wantErr: true},
		{name: "sqlite sink with path", mutate: func(c *Config) {
			c.Storage.Sink = "sqlite"
			c.Storage.Path = "snap.db"
		}, wantErr: false},
		{name: "postgres sink with DSN", mutate: func(c *Config) {
			c.Storage.Sink = "postgres"
			c.Storage.DSN = "postgres://localhost/nutritool?sslmode=disable"
		}, wantErr: false},
		{name: "unknown sink", mutate: func(c *Config) { c.Storage.Sink = "s3" }, wantErr: true},
		{name: "trusted proxy IP and CIDR", mutate: func(c *Config) {
			c.Server.TrustedProxies = []string{"10.0.0.1", "172.16.0.0/12", "::1"}
		}, wantErr: false},
		{name: "trusted proxy hostname", mutate: func(c *Config) {
			c.Server.TrustedProxies = []string{"proxy.internal"}
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
