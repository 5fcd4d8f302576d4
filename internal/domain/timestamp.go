package domain

import (
	"fmt"
	"math"
)

// Calendar constants for in-game time
const (
	MinutesPerHour = 60
	HoursPerDay    = 24
	MinutesPerDay  = MinutesPerHour * HoursPerDay

	// FirstDay is the day a new game starts on
	FirstDay uint32 = 1
	// LastDay is the last representable day
	LastDay uint32 = math.MaxUint32
)

// maxTotalMinutes is 23:59 on LastDay
const maxTotalMinutes = int64(LastDay)*MinutesPerDay + MinutesPerDay - 1

// Timestamp is a point in game time. Hour and Minute are always normalized
// into 0-23 and 0-59; values are ordered by (Day, Hour, Minute).
type Timestamp struct {
	Day    uint32 `json:"day"`
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
}

// NewTimestamp builds a normalized timestamp, carrying minute and hour overflow
// into the next unit. Negative values borrow from the larger unit; the day
// never drops below zero.
func NewTimestamp(day uint32, hour, minute int) Timestamp {
	return FromMinutes(int64(day)*MinutesPerDay + int64(hour)*MinutesPerHour + int64(minute))
}

// FromMinutes converts an absolute minute count back into a timestamp. The
// result is clamped to the representable range, so time never wraps.
func FromMinutes(total int64) Timestamp {
	if total < 0 {
		total = 0
	}
	if total > maxTotalMinutes {
		total = maxTotalMinutes
	}
	return Timestamp{
		Day:    uint32(total / MinutesPerDay),
		Hour:   int((total % MinutesPerDay) / MinutesPerHour),
		Minute: int(total % MinutesPerHour),
	}
}

// StartOfGame returns 06:00 on the first day
func StartOfGame() Timestamp {
	return Timestamp{Day: FirstDay, Hour: 6, Minute: 0}
}

// TotalMinutes returns the absolute minute count of the timestamp
func (t Timestamp) TotalMinutes() int64 {
	return int64(t.Day)*MinutesPerDay + int64(t.Hour)*MinutesPerHour + int64(t.Minute)
}

// AddMinutes returns the timestamp n minutes later (or earlier for negative n)
func (t Timestamp) AddMinutes(n int) Timestamp {
	return FromMinutes(t.TotalMinutes() + int64(n))
}

// MinutesSince returns how many minutes t is after earlier (negative if before)
func (t Timestamp) MinutesSince(earlier Timestamp) int64 {
	return t.TotalMinutes() - earlier.TotalMinutes()
}

// NextDayAt returns hour:00 on the day after t. On LastDay there is no next
// day and t itself is returned.
func (t Timestamp) NextDayAt(hour int) Timestamp {
	if t.Day >= LastDay {
		return t
	}
	return NewTimestamp(t.Day+1, hour, 0)
}

// Compare returns -1, 0 or +1 depending on whether t is before, equal to or after o
func (t Timestamp) Compare(o Timestamp) int {
	a, b := t.TotalMinutes(), o.TotalMinutes()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Before reports whether t is strictly earlier than o
func (t Timestamp) Before(o Timestamp) bool { return t.Compare(o) < 0 }

// After reports whether t is strictly later than o
func (t Timestamp) After(o Timestamp) bool { return t.Compare(o) > 0 }

// OnGrid reports whether t falls on a multiple of step minutes. Steps that
// divide an hour put every hour and every midnight on the grid.
func (t Timestamp) OnGrid(step int) bool {
	return step > 0 && t.TotalMinutes()%int64(step) == 0
}

// FloorToGrid returns the latest multiple of step minutes not after t
func (t Timestamp) FloorToGrid(step int) Timestamp {
	if step <= 1 {
		return t
	}
	total := t.TotalMinutes()
	return FromMinutes(total - total%int64(step))
}

// ValidTickSize reports whether minutes is a usable clock step: positive and
// dividing an hour evenly
func ValidTickSize(minutes int) bool {
	return minutes > 0 && MinutesPerHour%minutes == 0
}

// IsMidnight reports whether t sits exactly on 00:00
func (t Timestamp) IsMidnight() bool {
	return t.Hour == 0 && t.Minute == 0
}

// Valid reports whether hour and minute are within range
func (t Timestamp) Valid() bool {
	return t.Hour >= 0 && t.Hour < HoursPerDay && t.Minute >= 0 && t.Minute < MinutesPerHour
}

func (t Timestamp) String() string {
	return fmt.Sprintf("Day %d %02d:%02d", t.Day, t.Hour, t.Minute)
}

// HoursToMinutes converts whole hours into minutes
func HoursToMinutes(hours int) int {
	return hours * MinutesPerHour
}

// DaysToMinutes converts whole days into minutes
func DaysToMinutes(days int) int {
	return days * MinutesPerDay
}
