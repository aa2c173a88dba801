package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/diegoclair/reminder-bot/internal/domain/entity"
)

const archivedThreadsLimit = 50

type channel struct {
	session *discordgo.Session
	id      string
	guildID string
}

func (c *channel) ID() string {
	return c.id
}

func (c *channel) SendMessage(ctx context.Context, text string, embed *entity.Embed) error {
	msg := &discordgo.MessageSend{Content: text}
	if embed != nil {
		msg.Embeds = []*discordgo.MessageEmbed{toMessageEmbed(embed)}
	}

	if _, err := c.session.ChannelMessageSendComplex(c.id, msg, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send discord message: %w", err)
	}
	return nil
}

type forumChannel struct {
	*channel
}

func (f *forumChannel) ActiveThreads(ctx context.Context) ([]entity.Thread, error) {
	list, err := f.session.GuildThreadsActive(f.guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list active threads: %w", err)
	}

	var threads []entity.Thread
	for _, ch := range list.Threads {
		if ch.ParentID == f.id {
			threads = append(threads, toThread(ch))
		}
	}
	return threads, nil
}

func (f *forumChannel) ArchivedThreads(ctx context.Context) ([]entity.Thread, error) {
	list, err := f.session.ThreadsArchived(f.id, nil, archivedThreadsLimit, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list archived threads: %w", err)
	}

	threads := make([]entity.Thread, 0, len(list.Threads))
	for _, ch := range list.Threads {
		threads = append(threads, toThread(ch))
	}
	return threads, nil
}

func toMessageEmbed(embed *entity.Embed) *discordgo.MessageEmbed {
	out := &discordgo.MessageEmbed{
		Title:       embed.Title,
		Description: embed.Description,
		URL:         embed.URL,
		Color:       embed.Color,
	}
	if embed.Footer != "" {
		out.Footer = &discordgo.MessageEmbedFooter{Text: embed.Footer}
	}
	for _, field := range embed.Fields {
		out.Fields = append(out.Fields, &discordgo.MessageEmbedField{
			Name:   field.Name,
			Value:  field.Value,
			Inline: field.Inline,
		})
	}
	return out
}

func toThread(ch *discordgo.Channel) entity.Thread {
	thread := entity.Thread{
		ID:           ch.ID,
		Name:         ch.Name,
		URL:          fmt.Sprintf("https://discord.com/channels/%s/%s", ch.GuildID, ch.ID),
		MessageCount: ch.MessageCount,
	}
	if ch.ThreadMetadata != nil {
		thread.Archived = ch.ThreadMetadata.Archived
	}
	if created, err := discordgo.SnowflakeTimestamp(ch.ID); err == nil {
		thread.CreatedAt = created
	}
	return thread
}
