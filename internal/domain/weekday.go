package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidWeekday is returned when a value outside Sunday..Saturday is used
// as a weekday.
var ErrInvalidWeekday = errors.New("invalid weekday")

// WeekdayMask is a bit set over the seven weekdays.
type WeekdayMask uint8

const (
	Sunday WeekdayMask = 1 << iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// Composite masks. They are listed day by day so they never carry bits
// outside the seven weekdays.
const (
	// TomorrowIsHoliday selects the eves of Saturday and Sunday.
	TomorrowIsHoliday = Friday | Saturday
	// TomorrowIsWeekday selects the eves of Monday through Friday.
	TomorrowIsWeekday = Sunday | Monday | Tuesday | Wednesday | Thursday
	// AllDays selects every weekday.
	AllDays = Sunday | Monday | Tuesday | Wednesday | Thursday | Friday | Saturday
)

var weekdayFlags = [...]WeekdayMask{
	time.Sunday:    Sunday,
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
}

// FromWeekday maps a weekday to its single-bit flag.
func FromWeekday(day time.Weekday) (WeekdayMask, error) {
	if day < time.Sunday || day > time.Saturday {
		return 0, fmt.Errorf("%w: %d", ErrInvalidWeekday, int(day))
	}
	return weekdayFlags[day], nil
}

// Contains reports whether day is selected by m.
func (m WeekdayMask) Contains(day time.Weekday) bool {
	flag, err := FromWeekday(day)
	if err != nil {
		return false
	}
	return m&flag != 0
}

// Valid reports whether m selects at least one day and nothing else.
func (m WeekdayMask) Valid() bool {
	return m != 0 && m&^AllDays == 0
}

// Days lists the selected weekdays starting from Sunday.
func (m WeekdayMask) Days() []time.Weekday {
	var days []time.Weekday
	for day := time.Sunday; day <= time.Saturday; day++ {
		if m.Contains(day) {
			days = append(days, day)
		}
	}
	return days
}

var maskAliases = map[string]WeekdayMask{
	"all":         AllDays,
	"weekday-eve": TomorrowIsWeekday,
	"holiday-eve": TomorrowIsHoliday,
}

var dayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// ParseWeekdayMask parses a comma separated list of day names (sun, monday, ...)
// or one of the aliases all, weekday-eve and holiday-eve.
func ParseWeekdayMask(s string) (WeekdayMask, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if m, ok := maskAliases[s]; ok {
		return m, nil
	}

	var m WeekdayMask
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if len(part) < 3 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, part)
		}
		day, ok := dayNames[part[:3]]
		if !ok || !strings.HasPrefix(strings.ToLower(day.String()), part) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, part)
		}
		flag, _ := FromWeekday(day)
		m |= flag
	}
	return m, nil
}

func (m WeekdayMask) String() string {
	switch m {
	case AllDays:
		return "all"
	case TomorrowIsWeekday:
		return "weekday-eve"
	case TomorrowIsHoliday:
		return "holiday-eve"
	case 0:
		return "none"
	}

	names := make([]string, 0, 7)
	for _, day := range m.Days() {
		names = append(names, strings.ToLower(day.String()[:3]))
	}
	if m&^AllDays != 0 {
		names = append(names, fmt.Sprintf("0x%02x", uint8(m&^AllDays)))
	}
	return strings.Join(names, ",")
}
