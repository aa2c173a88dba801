package entity

import "time"

// Embed is the rich content attached to a reminder message. Chat adapters
// translate it to their native representation.
type Embed struct {
	Title       string
	Description string
	URL         string
	Color       int
	Footer      string
	Fields      []EmbedField
}

type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// Thread is a forum thread (or a threaded message) as seen by the bot.
type Thread struct {
	ID           string
	Name         string
	URL          string
	Archived     bool
	MessageCount int
	CreatedAt    time.Time
}
