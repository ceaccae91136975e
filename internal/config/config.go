package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/phishnet/")
	v.AddConfigPath("$HOME/.phishnet")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("PHISHNET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Social-engineering decision defaults
	v.SetDefault("social.alpha", 0.7)
	v.SetDefault("social.fallback_threshold", 0.45)
	v.SetDefault("social.model_paths", []string{
		"models/social_model.json",
		"models/social_model_v2.json",
	})
	v.SetDefault("social.threshold_path", "models/social_threshold.json")

	// Spam classifier defaults
	v.SetDefault("spam.model_paths", []string{
		"models/spam_model_v2.json",
		"models/spam_model.json",
	})
	v.SetDefault("spam.whitelisted_domains", []string{})

	// Mail source defaults
	v.SetDefault("mail.source", "imap")
	v.SetDefault("mail.imap.address", "imap.gmail.com:993")
	v.SetDefault("mail.imap.username", "")
	v.SetDefault("mail.imap.password", "")
	v.SetDefault("mail.imap.mailbox", "INBOX")
	v.SetDefault("mail.poll_interval", "30s")
	v.SetDefault("mail.attachment_dir", "attachments")
	v.SetDefault("mail.max_body_size", 100000)

	// URL reputation defaults
	v.SetDefault("urlscan.api_key", "")
	v.SetDefault("urlscan.base_url", "https://urlscan.io/api/v1")
	v.SetDefault("urlscan.poll_timeout", "30s")
	v.SetDefault("urlscan.poll_interval", "2s")

	// File reputation defaults
	v.SetDefault("virustotal.api_key", "")
	v.SetDefault("virustotal.base_url", "https://www.virustotal.com/vtapi/v2")

	// Reputation cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_frequency", "1h")
	v.SetDefault("cache.sqlite_path", "/data/phishnet_cache.db")
	v.SetDefault("cache.mysql_dsn", "user:password@tcp(localhost:3306)/phishnet")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
