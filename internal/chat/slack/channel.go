package slack

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/diegoclair/reminder-bot/internal/domain/entity"
	"github.com/slack-go/slack"
)

const (
	historyLimit = 200

	// threads without replies for this long count as archived
	threadIdle = 7 * 24 * time.Hour
)

// channel is a Slack conversation. Every Slack channel can hold threads, so
// it also satisfies contract.ForumChannel: a thread is a thread root message,
// named after its first line.
type channel struct {
	api  *slack.Client
	id   string
	name string
}

func (c *channel) ID() string {
	return c.id
}

func (c *channel) SendMessage(ctx context.Context, text string, embed *entity.Embed) error {
	opts := []slack.MsgOption{
		slack.MsgOptionText(toMrkdwn(text), false),
		slack.MsgOptionAsUser(false),
	}
	if embed != nil {
		opts = append(opts, slack.MsgOptionAttachments(toAttachment(embed)))
	}

	if _, _, err := c.api.PostMessageContext(ctx, c.id, opts...); err != nil {
		return fmt.Errorf("failed to send Slack message: %w", err)
	}
	return nil
}

func (c *channel) ActiveThreads(ctx context.Context) ([]entity.Thread, error) {
	return c.threads(ctx, false)
}

func (c *channel) ArchivedThreads(ctx context.Context) ([]entity.Thread, error) {
	return c.threads(ctx, true)
}

func (c *channel) threads(ctx context.Context, archived bool) ([]entity.Thread, error) {
	history, err := c.api.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: c.id,
		Limit:     historyLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get history of %s: %w", c.id, err)
	}

	cutoff := time.Now().Add(-threadIdle)
	var threads []entity.Thread
	for _, msg := range history.Messages {
		if !isThreadRoot(msg) {
			continue
		}

		thread := entity.Thread{
			ID:           msg.Timestamp,
			Name:         firstLine(msg.Text),
			MessageCount: msg.ReplyCount,
			CreatedAt:    parseTimestamp(msg.Timestamp),
		}
		lastActivity := msg.LatestReply
		if lastActivity == "" {
			lastActivity = msg.Timestamp
		}
		thread.Archived = parseTimestamp(lastActivity).Before(cutoff)
		if thread.Archived != archived {
			continue
		}

		link, err := c.api.GetPermalinkContext(ctx, &slack.PermalinkParameters{Channel: c.id, Ts: msg.Timestamp})
		if err != nil {
			return nil, fmt.Errorf("failed to get permalink of %s: %w", msg.Timestamp, err)
		}
		thread.URL = link

		threads = append(threads, thread)
	}
	return threads, nil
}

// isThreadRoot reports whether msg starts a thread, including a thread that
// has no replies yet.
func isThreadRoot(msg slack.Message) bool {
	return msg.ReplyCount > 0 || (msg.ThreadTimestamp != "" && msg.ThreadTimestamp == msg.Timestamp)
}

func toAttachment(embed *entity.Embed) slack.Attachment {
	att := slack.Attachment{
		Title:     embed.Title,
		TitleLink: embed.URL,
		Text:      toMrkdwn(embed.Description),
		Footer:    embed.Footer,
	}
	if embed.Color != 0 {
		att.Color = fmt.Sprintf("#%06x", embed.Color)
	}
	for _, field := range embed.Fields {
		att.Fields = append(att.Fields, slack.AttachmentField{
			Title: field.Name,
			Value: field.Value,
			Short: field.Inline,
		})
	}
	return att
}

// toMrkdwn turns markdown bold (**x**) into Slack bold (*x*).
func toMrkdwn(text string) string {
	return strings.ReplaceAll(text, "**", "*")
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return strings.TrimSpace(line)
}

// parseTimestamp reads a Slack ts ("1700000000.000100"). Invalid values give
// the zero time.
func parseTimestamp(ts string) time.Time {
	sec, frac, _ := strings.Cut(ts, ".")
	s, err := strconv.ParseInt(sec, 10, 64)
	if err != nil {
		return time.Time{}
	}
	var us int64
	if frac != "" {
		us, _ = strconv.ParseInt(frac, 10, 64)
	}
	return time.Unix(s, us*int64(time.Microsecond)).UTC()
}
