package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/diegoclair/reminder-bot/internal/domain"
)

var (
	ErrInvalidTime = errors.New("invalid reminder time")
	ErrInvalidDays = errors.New("invalid reminder days")
	ErrEmptyText   = errors.New("reminder text is empty")
)

// Definition describes one static reminder: when it fires and what it posts.
type Definition struct {
	Hour   int
	Minute int
	Days   domain.WeekdayMask
	Text   string
	Embed  *Embed

	// AttachThread marks definitions that carry the forum thread embed
	// resolved at startup, if any.
	AttachThread bool
}

// Validate checks the definition before a timer is built for it.
func (d Definition) Validate() error {
	if d.Hour < 0 || d.Hour > 23 || d.Minute < 0 || d.Minute > 59 {
		return fmt.Errorf("%w: %02d:%02d", ErrInvalidTime, d.Hour, d.Minute)
	}
	if !d.Days.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidDays, d.Days)
	}
	if d.Text == "" && d.Embed == nil {
		return ErrEmptyText
	}
	return nil
}

// Clock returns the time of day as HH:MM.
func (d Definition) Clock() string {
	return fmt.Sprintf("%02d:%02d", d.Hour, d.Minute)
}

// Delivery statuses recorded in the journal.
const (
	DeliverySent    = "sent"
	DeliveryFailed  = "failed"
	DeliverySkipped = "skipped"
)

// Delivery is one journal row: the outcome of a single timer fire.
type Delivery struct {
	ID            string
	ReminderIndex int
	ChannelID     string
	ScheduledFor  time.Time
	Status        string
	Error         string
	CreatedAt     time.Time
}

// ReminderStatus is a snapshot of one armed reminder.
type ReminderStatus struct {
	Index   int
	Clock   string
	Days    domain.WeekdayMask
	Text    string
	Next    time.Time
	Running bool
}

// NextDelivery returns the first fire, starting at Next, that falls on a
// selected weekday. It is zero when the reminder is not armed.
func (s ReminderStatus) NextDelivery() time.Time {
	if s.Next.IsZero() || !s.Days.Valid() {
		return time.Time{}
	}
	at := s.Next
	for !s.Days.Contains(at.Weekday()) {
		at = at.AddDate(0, 0, 1)
	}
	return at
}
