package entity

import (
	"testing"
	"time"

	"github.com/diegoclair/reminder-bot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDefinition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		def     Definition
		wantErr error
	}{
		{name: "Should accept a valid definition", def: Definition{Hour: 21, Days: domain.AllDays, Text: "start"}},
		{name: "Should accept an embed without text", def: Definition{Hour: 0, Minute: 59, Days: domain.Sunday, Embed: &Embed{Title: "t"}}},
		{name: "Should reject hour 24", def: Definition{Hour: 24, Days: domain.AllDays, Text: "x"}, wantErr: ErrInvalidTime},
		{name: "Should reject minute 60", def: Definition{Hour: 1, Minute: 60, Days: domain.AllDays, Text: "x"}, wantErr: ErrInvalidTime},
		{name: "Should reject empty days", def: Definition{Hour: 1, Text: "x"}, wantErr: ErrInvalidDays},
		{name: "Should reject empty text", def: Definition{Hour: 1, Days: domain.Monday}, wantErr: ErrEmptyText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDefinition_Clock(t *testing.T) {
	assert.Equal(t, "07:05", Definition{Hour: 7, Minute: 5}.Clock())
}

func TestReminderStatus_NextDelivery(t *testing.T) {
	// Friday
	next := time.Date(2024, 3, 15, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, next, ReminderStatus{Days: domain.TomorrowIsHoliday, Next: next}.NextDelivery())
	assert.Equal(t, next.AddDate(0, 0, 2), ReminderStatus{Days: domain.TomorrowIsWeekday, Next: next}.NextDelivery())
	assert.True(t, ReminderStatus{Days: domain.AllDays}.NextDelivery().IsZero())
	assert.True(t, ReminderStatus{Next: next}.NextDelivery().IsZero())
}
