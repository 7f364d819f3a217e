package cache

import (
	"fmt"

	"tawdifak-listings/pkg/config"
)

// configuration settings for connecting to a Redis instance.
type RedisConfig struct {
	Host        string
	Port        int
	Password    string
	DB          int
	TLSEnabled  bool
	TLSCertFile string
}

// RedisConfigFrom extracts the Redis section of the application config.
func RedisConfigFrom(cfg *config.Config) *RedisConfig {
	return &RedisConfig{
		Host:        cfg.Redis.Host,
		Port:        cfg.Redis.Port,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		TLSEnabled:  cfg.Redis.TLSEnabled,
		TLSCertFile: cfg.Redis.TLSCertFile,
	}
}

// Addr is host:port.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
