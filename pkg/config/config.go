package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ListingOverride tweaks one listing type without touching code.
type ListingOverride struct {
	PageSize int    `yaml:"page_size"`
	Mode     string `yaml:"mode"`
	Cached   *bool  `yaml:"cached"`
}

type Config struct {
	Server struct {
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Database struct {
		URI    string `yaml:"uri"`
		DBName string `yaml:"dbname"`
	} `yaml:"database"`
	Redis struct {
		Host        string `yaml:"host"`
		Port        int    `yaml:"port"`
		Password    string `yaml:"password"`
		DB          int    `yaml:"db"`
		TLSEnabled  bool   `yaml:"tls_enabled"`
		TLSCertFile string `yaml:"tls_cert_file"`
	} `yaml:"redis"`
	Cache struct {
		// memory keeps session caches in process; redis backs them with Redis.
		Backend string        `yaml:"backend"`
		HomeTTL time.Duration `yaml:"home_ttl"`
	} `yaml:"cache"`
	Session struct {
		IdleTTL       time.Duration `yaml:"idle_ttl"`
		SweepInterval time.Duration `yaml:"sweep_interval"`
	} `yaml:"session"`
	Data struct {
		// mongo reads the collections directly; http calls a remote data API.
		Source  string        `yaml:"source"`
		APIURL  string        `yaml:"api_url"`
		Timeout time.Duration `yaml:"timeout"`
		Retries int           `yaml:"retries"`
	} `yaml:"data"`
	Listings  map[string]ListingOverride `yaml:"listings"`
	RateLimit struct {
		PerMinute int `yaml:"per_minute"`
		Burst     int `yaml:"burst"`
	} `yaml:"rate_limit"`
	Operator struct {
		// Token unlocks maintenance routes; empty keeps them closed.
		Token string `yaml:"token"`
	} `yaml:"operator"`
}

// LoadConfig reads the YAML file at path, applies env overrides, defaults and validation.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse is LoadConfig without the file read.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) applyEnv() error {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		portNum, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid SERVER_PORT value: %w", err)
		}
		cfg.Server.Port = portNum
	}
	if env := os.Getenv("ENV"); env != "" {
		cfg.Server.Env = env
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		cfg.Database.URI = uri
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		cfg.Database.DBName = dbname
	}
	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.Redis.Host = host
	}
	if port := os.Getenv("REDIS_PORT"); port != "" {
		portNum, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid REDIS_PORT value: %w", err)
		}
		cfg.Redis.Port = portNum
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		dbNum, err := strconv.Atoi(db)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB value: %w", err)
		}
		cfg.Redis.DB = dbNum
	}
	if tlsEnabled := os.Getenv("REDIS_TLS_ENABLED"); tlsEnabled != "" {
		cfg.Redis.TLSEnabled = tlsEnabled == "true"
	}
	if tlsCertFile := os.Getenv("REDIS_TLS_CERT_FILE"); tlsCertFile != "" {
		cfg.Redis.TLSCertFile = tlsCertFile
	}
	if backend := os.Getenv("CACHE_BACKEND"); backend != "" {
		cfg.Cache.Backend = backend
	}
	if source := os.Getenv("DATA_SOURCE"); source != "" {
		cfg.Data.Source = source
	}
	if apiURL := os.Getenv("DATA_API_URL"); apiURL != "" {
		cfg.Data.APIURL = apiURL
	}
	if token := os.Getenv("OPERATOR_TOKEN"); token != "" {
		cfg.Operator.Token = token
	}
	return nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "INFO"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "tawdifak"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
	}
	if cfg.Cache.HomeTTL == 0 {
		cfg.Cache.HomeTTL = 10 * time.Minute
	}
	if cfg.Session.IdleTTL == 0 {
		cfg.Session.IdleTTL = 30 * time.Minute
	}
	if cfg.Session.SweepInterval == 0 {
		cfg.Session.SweepInterval = time.Minute
	}
	if cfg.Data.Source == "" {
		cfg.Data.Source = "mongo"
	}
	if cfg.Data.Timeout == 0 {
		cfg.Data.Timeout = 10 * time.Second
	}
	if cfg.Data.Retries == 0 {
		cfg.Data.Retries = 3
	}
	if cfg.RateLimit.PerMinute == 0 {
		cfg.RateLimit.PerMinute = 100
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 10
	}
}

// Validate checks the combined file/env/default values.
func (cfg *Config) Validate() error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535")
	}
	if cfg.Redis.Port <= 0 || cfg.Redis.Port > 65535 {
		return fmt.Errorf("REDIS_PORT must be between 1 and 65535")
	}
	if cfg.Redis.DB < 0 {
		return fmt.Errorf("REDIS_DB must be non-negative")
	}
	if cfg.Redis.TLSEnabled && cfg.Redis.TLSCertFile != "" {
		if _, err := os.Stat(cfg.Redis.TLSCertFile); os.IsNotExist(err) {
			return fmt.Errorf("TLS certificate file does not exist: %s", cfg.Redis.TLSCertFile)
		}
	}
	switch cfg.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("cache.backend must be memory or redis, got %q", cfg.Cache.Backend)
	}
	switch cfg.Data.Source {
	case "mongo":
		if cfg.Database.URI == "" {
			return fmt.Errorf("MONGO_URI is required when data.source is mongo")
		}
	case "http":
		if cfg.Data.APIURL == "" {
			return fmt.Errorf("DATA_API_URL is required when data.source is http")
		}
	default:
		return fmt.Errorf("data.source must be mongo or http, got %q", cfg.Data.Source)
	}
	if cfg.Session.IdleTTL < time.Minute {
		return fmt.Errorf("session.idle_ttl must be at least 1m")
	}
	for name, o := range cfg.Listings {
		if o.PageSize < 0 || o.PageSize > 100 {
			return fmt.Errorf("listings.%s.page_size must be between 1 and 100", name)
		}
		switch o.Mode {
		case "", "discrete", "cumulative":
		default:
			return fmt.Errorf("listings.%s.mode must be discrete or cumulative, got %q", name, o.Mode)
		}
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (cfg *Config) Addr() string {
	return fmt.Sprintf(":%d", cfg.Server.Port)
}

// IsProduction reports whether the service runs with production settings.
func (cfg *Config) IsProduction() bool {
	return cfg.Server.Env == "production"
}
