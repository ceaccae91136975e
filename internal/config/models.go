package config

import "time"

// SocialConfig represents the configuration for the social-engineering decision
type SocialConfig struct {
	Alpha             float64
	FallbackThreshold float64
	ModelPaths        []string
	ThresholdPath     string
}

// SpamConfig represents the configuration for the spam classifier
type SpamConfig struct {
	ModelPaths         []string
	WhitelistedDomains []string
}

// IMAPConfig represents the configuration for the IMAP mail source
type IMAPConfig struct {
	Address  string
	Username string
	Password string
	Mailbox  string
}

// URLScanConfig represents the configuration for the urlscan.io client
type URLScanConfig struct {
	APIKey       string
	BaseURL      string
	PollTimeout  time.Duration
	PollInterval time.Duration
}

// VirusTotalConfig represents the configuration for the VirusTotal client
type VirusTotalConfig struct {
	APIKey  string
	BaseURL string
}

// GetSocial returns the social-engineering decision configuration
func (c *Config) GetSocial() SocialConfig {
	return SocialConfig{
		Alpha:             c.GetFloat64("social.alpha"),
		FallbackThreshold: c.GetFloat64("social.fallback_threshold"),
		ModelPaths:        c.GetStringSlice("social.model_paths"),
		ThresholdPath:     c.GetString("social.threshold_path"),
	}
}

// GetSpam returns the spam classifier configuration
func (c *Config) GetSpam() SpamConfig {
	return SpamConfig{
		ModelPaths:         c.GetStringSlice("spam.model_paths"),
		WhitelistedDomains: c.GetStringSlice("spam.whitelisted_domains"),
	}
}

// GetIMAP returns the IMAP mail source configuration
func (c *Config) GetIMAP() IMAPConfig {
	return IMAPConfig{
		Address:  c.GetString("mail.imap.address"),
		Username: c.GetString("mail.imap.username"),
		Password: c.GetString("mail.imap.password"),
		Mailbox:  c.GetString("mail.imap.mailbox"),
	}
}

// GetURLScan returns the urlscan.io client configuration
func (c *Config) GetURLScan() URLScanConfig {
	pollTimeout, err := c.GetDuration("urlscan.poll_timeout")
	if err != nil {
		pollTimeout = 30 * time.Second
	}
	pollInterval, err := c.GetDuration("urlscan.poll_interval")
	if err != nil {
		pollInterval = 2 * time.Second
	}
	return URLScanConfig{
		APIKey:       c.GetString("urlscan.api_key"),
		BaseURL:      c.GetString("urlscan.base_url"),
		PollTimeout:  pollTimeout,
		PollInterval: pollInterval,
	}
}

// GetVirusTotal returns the VirusTotal client configuration
func (c *Config) GetVirusTotal() VirusTotalConfig {
	return VirusTotalConfig{
		APIKey:  c.GetString("virustotal.api_key"),
		BaseURL: c.GetString("virustotal.base_url"),
	}
}
