package discord

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/diegoclair/reminder-bot/internal/domain/contract"
	"go.uber.org/zap"
)

var ErrNotLoggedIn = errors.New("discord session is not open")

// Client is a contract.ChatClient backed by a discordgo session.
type Client struct {
	log *zap.Logger

	mu      sync.RWMutex
	session *discordgo.Session
}

func New(log *zap.Logger) *Client {
	return &Client{log: log}
}

func (c *Client) Login(ctx context.Context, token string) error {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds
	session.LogLevel = logLevel(c.log)
	discordgo.Logger = zapLogger(c.log)
	session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		c.log.Info("discord session ready",
			zap.String("user", r.User.Username),
			zap.Int("guilds", len(r.Guilds)),
		)
	})

	if err := session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}

	c.mu.Lock()
	c.session = session
	c.mu.Unlock()
	return nil
}

func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	session := c.session
	c.session = nil
	c.mu.Unlock()

	if session == nil {
		return nil
	}
	if err := session.Close(); err != nil {
		return fmt.Errorf("failed to close discord session: %w", err)
	}
	return nil
}

func (c *Client) Channel(ctx context.Context, id string) (contract.Channel, error) {
	c.mu.RLock()
	session := c.session
	c.mu.RUnlock()

	if session == nil {
		return nil, ErrNotLoggedIn
	}

	ch, err := session.Channel(id, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get discord channel %s: %w", id, err)
	}

	base := &channel{session: session, id: ch.ID, guildID: ch.GuildID}
	if ch.Type == discordgo.ChannelTypeGuildForum {
		return &forumChannel{channel: base}, nil
	}
	return base, nil
}

// logLevel maps the zap level onto discordgo's own logger.
func logLevel(log *zap.Logger) int {
	switch {
	case log.Core().Enabled(zap.DebugLevel):
		return discordgo.LogInformational
	case log.Core().Enabled(zap.WarnLevel):
		return discordgo.LogWarning
	default:
		return discordgo.LogError
	}
}

// zapLogger forwards discordgo's internal log lines to log.
func zapLogger(log *zap.Logger) func(msgL, caller int, format string, a ...interface{}) {
	log = log.With(zap.String("component", "discordgo"))
	return func(msgL, caller int, format string, a ...interface{}) {
		msg := fmt.Sprintf(format, a...)
		switch msgL {
		case discordgo.LogError:
			log.Error(msg)
		case discordgo.LogWarning:
			log.Warn(msg)
		case discordgo.LogInformational:
			log.Info(msg)
		default:
			log.Debug(msg)
		}
	}
}
