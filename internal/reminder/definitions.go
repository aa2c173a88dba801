package reminder

import (
	"fmt"

	"github.com/diegoclair/reminder-bot/internal/domain"
	"github.com/diegoclair/reminder-bot/internal/domain/entity"
)

// Definitions returns the UnityTime study session schedule. Sessions start
// at 21:00 every day and run until 22:00 on weekday eves or 22:30 when the
// next day is a holiday.
func Definitions() []entity.Definition {
	return []entity.Definition{
		// announcements
		{Hour: 19, Minute: 0, Days: domain.TomorrowIsWeekday, Text: "" +
			"UnityTime runs tonight from **21:00 to 22:00**!\n" +
			"Join us in the **UnityTime** voice channel.\n" +
			"Drop by if you have time!"},
		{Hour: 19, Minute: 0, Days: domain.TomorrowIsHoliday, Text: "" +
			"UnityTime runs tonight from **21:00 to 22:30**!\n" +
			"Join us in the **UnityTime** voice channel.\n" +
			"Drop by if you have time!"},

		// every day
		{Hour: 21, Minute: 0, Days: domain.AllDays, AttachThread: true, Text: "" +
			"UnityTime is starting!\n" +
			"**21:00~21:05**: set your goals!"},
		{Hour: 21, Minute: 5, Days: domain.AllDays, Text: "**21:05~21:30**: first half!"},
		{Hour: 21, Minute: 30, Days: domain.AllDays, Text: "**21:30~21:35**: 5 minute break!"},

		// weekday eves
		{Hour: 21, Minute: 35, Days: domain.TomorrowIsWeekday, Text: "**21:35~22:00**: second half!"},
		{Hour: 22, Minute: 0, Days: domain.TomorrowIsWeekday, Text: "" +
			"**22:00**: that's a wrap!\n" +
			"Great work everyone!"},

		// holiday eves
		{Hour: 21, Minute: 35, Days: domain.TomorrowIsHoliday, Text: "**21:35~22:00**: middle stretch!"},
		{Hour: 22, Minute: 0, Days: domain.TomorrowIsHoliday, Text: "**22:00~22:05**: 5 minute break!"},
		{Hour: 22, Minute: 5, Days: domain.TomorrowIsHoliday, Text: "**22:05~22:30**: second half!"},
		{Hour: 22, Minute: 30, Days: domain.TomorrowIsHoliday, Text: "" +
			"**22:30**: that's a wrap!\n" +
			"Great work everyone!"},
	}
}

// Validate checks every definition, reporting the first invalid one.
func Validate(defs []entity.Definition) error {
	for i, def := range defs {
		if err := def.Validate(); err != nil {
			return fmt.Errorf("reminder %d (%s): %w", i, def.Clock(), err)
		}
	}
	return nil
}
