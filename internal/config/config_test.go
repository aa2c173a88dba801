package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("CHANNEL_ID", "900379983439077440")
	t.Setenv("POLL_INTERVAL", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, PlatformDiscord, cfg.ChatPlatform)
	assert.Equal(t, "secret.json", cfg.SecretPath)
	assert.Equal(t, "900379983439077440", cfg.ChannelID)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, time.Minute, cfg.MissedGrace)
	assert.Equal(t, "Asia/Tokyo", cfg.Timezone)
	assert.Empty(t, cfg.DatabasePath)
	assert.Equal(t, 30*24*time.Hour, cfg.JournalRetention)
}

func TestLoad_RequiresChannel(t *testing.T) {
	t.Setenv("CHANNEL_ID", "")
	_, err := Load()
	assert.ErrorContains(t, err, "CHANNEL_ID")
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		ChatPlatform:    PlatformSlack,
		ChannelID:       "C123",
		Timezone:        "UTC",
		PollInterval:    time.Second,
		MissedGrace:     time.Minute,
		SendTimeout:     time.Second,
		ShutdownTimeout: time.Second,
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "Should accept a valid config", mutate: func(c *Config) {}},
		{name: "Should reject unknown platform", mutate: func(c *Config) { c.ChatPlatform = "irc" }, wantErr: true},
		{name: "Should reject zero poll interval", mutate: func(c *Config) { c.PollInterval = 0 }, wantErr: true},
		{name: "Should reject zero send timeout", mutate: func(c *Config) { c.SendTimeout = 0 }, wantErr: true},
		{name: "Should reject empty channel", mutate: func(c *Config) { c.ChannelID = "" }, wantErr: true},
		{name: "Should reject zero missed grace", mutate: func(c *Config) { c.MissedGrace = 0 }, wantErr: true},
		{name: "Should reject zero shutdown timeout", mutate: func(c *Config) { c.ShutdownTimeout = 0 }, wantErr: true},
		{name: "Should reject negative shutdown timeout", mutate: func(c *Config) { c.ShutdownTimeout = -time.Second }, wantErr: true},
		{name: "Should reject unknown timezone", mutate: func(c *Config) { c.Timezone = "Mars/Olympus" }, wantErr: true},
		{name: "Should reject negative retention", mutate: func(c *Config) { c.JournalRetention = -time.Hour }, wantErr: true},
		{name: "Should reject thread name without forum", mutate: func(c *Config) { c.ThreadName = "UnityTime" }, wantErr: true},
		{
			name: "Should accept forum with thread name",
			mutate: func(c *Config) {
				c.ForumChannelID = "F1"
				c.ThreadName = "UnityTime"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoadSecret(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	tests := []struct {
		name      string
		path      string
		wantToken string
		wantErr   error
	}{
		{name: "Should read the token", path: write("ok.json", `{"token": " abc.def "}`), wantToken: "abc.def"},
		{name: "Should fail on missing file", path: filepath.Join(dir, "missing.json"), wantErr: os.ErrNotExist},
		{name: "Should fail on malformed json", path: write("bad.json", `{"token":`)},
		{name: "Should fail on empty token", path: write("empty.json", `{"token": ""}`), wantErr: ErrMissingToken},
		{name: "Should fail without token field", path: write("none.json", `{"other": "x"}`), wantErr: ErrMissingToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secret, err := LoadSecret(tt.path)
			if tt.wantToken == "" {
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, secret.Token)
		})
	}
}
