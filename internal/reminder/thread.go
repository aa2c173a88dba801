package reminder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/diegoclair/reminder-bot/internal/domain/contract"
	"github.com/diegoclair/reminder-bot/internal/domain/entity"
)

var (
	ErrThreadNotFound = errors.New("thread not found")
	ErrNotForum       = errors.New("channel does not support threads")
)

const threadEmbedColor = 0x5865f2

// FindThread looks a thread up by name, active threads first, then archived
// ones. Names are compared case-insensitively.
func FindThread(ctx context.Context, forum contract.ForumChannel, name string) (entity.Thread, error) {
	active, err := forum.ActiveThreads(ctx)
	if err != nil {
		return entity.Thread{}, fmt.Errorf("failed to list active threads: %w", err)
	}
	if thread, ok := matchThread(active, name); ok {
		return thread, nil
	}

	archived, err := forum.ArchivedThreads(ctx)
	if err != nil {
		return entity.Thread{}, fmt.Errorf("failed to list archived threads: %w", err)
	}
	if thread, ok := matchThread(archived, name); ok {
		return thread, nil
	}

	return entity.Thread{}, fmt.Errorf("%w: %q", ErrThreadNotFound, name)
}

func matchThread(threads []entity.Thread, name string) (entity.Thread, bool) {
	for _, thread := range threads {
		if strings.EqualFold(strings.TrimSpace(thread.Name), strings.TrimSpace(name)) {
			return thread, true
		}
	}
	return entity.Thread{}, false
}

// ThreadEmbed renders a thread as the embed posted with a reminder.
func ThreadEmbed(thread entity.Thread) *entity.Embed {
	embed := &entity.Embed{
		Title:       thread.Name,
		Description: "Share your goals and progress in this thread.",
		URL:         thread.URL,
		Color:       threadEmbedColor,
	}
	if thread.MessageCount > 0 {
		embed.Fields = append(embed.Fields, entity.EmbedField{
			Name:   "Messages",
			Value:  fmt.Sprint(thread.MessageCount),
			Inline: true,
		})
	}
	if !thread.CreatedAt.IsZero() {
		embed.Footer = "Started " + thread.CreatedAt.Format("2006-01-02")
	}
	return embed
}

// WithThreadEmbed returns a copy of defs where every definition marked
// AttachThread carries embed.
func WithThreadEmbed(defs []entity.Definition, embed *entity.Embed) []entity.Definition {
	out := make([]entity.Definition, len(defs))
	copy(out, defs)
	for i := range out {
		if out[i].AttachThread {
			out[i].Embed = embed
		}
	}
	return out
}
