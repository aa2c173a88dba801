package slack

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/diegoclair/reminder-bot/internal/domain/contract"
	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

var ErrNotLoggedIn = errors.New("slack client is not logged in")

// Client is a contract.ChatClient backed by the Slack Web API. Slack has no
// session to open, so Login validates the token with auth.test.
type Client struct {
	log  *zap.Logger
	opts []slack.Option

	mu  sync.RWMutex
	api *slack.Client
}

func New(log *zap.Logger, opts ...slack.Option) *Client {
	return &Client{log: log, opts: opts}
}

func (c *Client) Login(ctx context.Context, token string) error {
	api := slack.New(token, c.opts...)

	auth, err := api.AuthTestContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to authenticate with slack: %w", err)
	}
	c.log.Info("slack client ready", zap.String("team", auth.Team), zap.String("user", auth.User))

	c.mu.Lock()
	c.api = api
	c.mu.Unlock()
	return nil
}

func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	c.api = nil
	c.mu.Unlock()
	return nil
}

func (c *Client) Channel(ctx context.Context, id string) (contract.Channel, error) {
	c.mu.RLock()
	api := c.api
	c.mu.RUnlock()

	if api == nil {
		return nil, ErrNotLoggedIn
	}

	info, err := api.GetConversationInfoContext(ctx, &slack.GetConversationInfoInput{ChannelID: id})
	if err != nil {
		return nil, fmt.Errorf("failed to get slack channel %s: %w", id, err)
	}

	return &channel{api: api, id: info.ID, name: info.Name}, nil
}
