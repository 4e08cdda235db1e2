package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	YouTube    YouTubeConfig    `yaml:"youtube"`
	Discord    DiscordConfig    `yaml:"discord"`
	Channels   ChannelsConfig   `yaml:"channels"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Schedule   string           `yaml:"schedule"`
}

type YouTubeConfig struct {
	APIKey         string `yaml:"api_key" env:"YOUTUBE_API_KEY"`
	Endpoint       string `yaml:"endpoint"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the per-request deadline for API lookups.
func (c *YouTubeConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type DiscordConfig struct {
	Token string `yaml:"token" env:"DISCORD_BOT_TOKEN"`
}

type ChannelsConfig struct {
	File           string `yaml:"file" env:"CHANNELS_FILE"`
	SnarferDefault *bool  `yaml:"snarfer_default"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format"` // console or json
}

type MonitoringConfig struct {
	HealthPort int `yaml:"health_port"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(configFile)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Environment-only setup
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if c.YouTube.APIKey == "" {
		c.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}
	if c.Discord.Token == "" {
		c.Discord.Token = os.Getenv("DISCORD_BOT_TOKEN")
	}
	if c.Channels.File == "" {
		c.Channels.File = os.Getenv("CHANNELS_FILE")
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

func (c *Config) applyDefaults() {
	c.YouTube.APIKey = strings.TrimSpace(c.YouTube.APIKey)
	c.Discord.Token = strings.TrimSpace(c.Discord.Token)

	if c.YouTube.TimeoutSeconds <= 0 {
		c.YouTube.TimeoutSeconds = 10
	}
	if c.Channels.File == "" {
		c.Channels.File = "channels.yaml"
	}
	if c.Channels.SnarferDefault == nil {
		enabled := true
		c.Channels.SnarferDefault = &enabled
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Monitoring.HealthPort == 0 {
		c.Monitoring.HealthPort = 8080
	}
	if c.Schedule == "" {
		c.Schedule = "0 */5 * * * *" // Every 5 minutes
	}
}

// SnarferEnabledByDefault reports whether channels without an explicit
// setting have snarfing turned on.
func (c *ChannelsConfig) SnarferEnabledByDefault() bool {
	return c.SnarferDefault == nil || *c.SnarferDefault
}

func (c *Config) validate() error {
	if c.Discord.Token == "" {
		return fmt.Errorf("Discord bot token is required (set DISCORD_BOT_TOKEN or discord.token)")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported logging format %q (use console or json)", c.Logging.Format)
	}
	if c.Monitoring.HealthPort < 0 || c.Monitoring.HealthPort > 65535 {
		return fmt.Errorf("monitoring.health_port %d is out of range", c.Monitoring.HealthPort)
	}
	return nil
}
