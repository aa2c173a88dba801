package config

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/kelseyhightower/envconfig"
)

const (
	PlatformDiscord = "discord"
	PlatformSlack   = "slack"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	ChatPlatform string `envconfig:"CHAT_PLATFORM" default:"discord"` // discord|slack
	SecretPath   string `envconfig:"SECRET_PATH" default:"secret.json"`
	ChannelID    string `envconfig:"CHANNEL_ID" required:"true"`

	// Optional forum thread whose link is attached to the session start reminder.
	ForumChannelID string `envconfig:"FORUM_CHANNEL_ID"`
	ThreadName     string `envconfig:"THREAD_NAME"`

	Timezone        string        `envconfig:"TIMEZONE" default:"Asia/Tokyo"`
	PollInterval    time.Duration `envconfig:"POLL_INTERVAL" default:"1s"`
	MissedGrace     time.Duration `envconfig:"MISSED_GRACE" default:"1m"`
	SendTimeout     time.Duration `envconfig:"SEND_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error

	// Empty DatabasePath disables the delivery journal.
	DatabasePath     string        `envconfig:"DATABASE_PATH"`
	JournalRetention time.Duration `envconfig:"JOURNAL_RETENTION" default:"720h"`

	// Empty HTTPAddr disables /health, /metrics and slash commands.
	HTTPAddr           string `envconfig:"HTTP_ADDR"`
	SlackSigningSecret string `envconfig:"SLACK_SIGNING_SECRET"`
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.ChatPlatform {
	case PlatformDiscord, PlatformSlack:
	default:
		return fmt.Errorf("unsupported chat platform %q", c.ChatPlatform)
	}
	if c.ChannelID == "" {
		return errors.New("CHANNEL_ID is required")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive, got %s", c.PollInterval)
	}
	if c.SendTimeout <= 0 {
		return fmt.Errorf("SEND_TIMEOUT must be positive, got %s", c.SendTimeout)
	}
	if c.MissedGrace <= 0 {
		return fmt.Errorf("MISSED_GRACE must be positive, got %s", c.MissedGrace)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	if c.JournalRetention < 0 {
		return fmt.Errorf("JOURNAL_RETENTION must not be negative, got %s", c.JournalRetention)
	}
	if (c.ForumChannelID == "") != (c.ThreadName == "") {
		return fmt.Errorf("FORUM_CHANNEL_ID and THREAD_NAME must be set together")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}
