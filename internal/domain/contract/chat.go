package contract

import (
	"context"

	"github.com/diegoclair/reminder-bot/internal/domain/entity"
)

//go:generate mockgen -source=chat.go -destination=../../../mocks/chat_mock.go -package=mocks

// ChatClient is the part of a chat platform the bot relies on.
// Implementations must be safe for concurrent use.
type ChatClient interface {
	Login(ctx context.Context, token string) error
	Logout(ctx context.Context) error

	// Channel resolves a channel id. An unknown id is an error, never a nil
	// channel.
	Channel(ctx context.Context, id string) (Channel, error)
}

// Channel is a resolved channel handle. It is shared read-only by every
// reminder bound to it.
type Channel interface {
	ID() string
	SendMessage(ctx context.Context, text string, embed *entity.Embed) error
}

// ForumChannel is a channel whose conversations are organised in threads.
type ForumChannel interface {
	Channel
	ActiveThreads(ctx context.Context) ([]entity.Thread, error)
	ArchivedThreads(ctx context.Context) ([]entity.Thread, error)
}

// ReminderService is what the command handlers need from the reminder
// orchestration.
type ReminderService interface {
	Status() []entity.ReminderStatus
}
