package aggregate

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// TimeEntryRecord is the unbilled time entry row as loaded from storage.
type TimeEntryRecord struct {
	ID              snowflake.ID
	EstateID        snowflake.ID
	DurationMinutes int64
	StartedAt       *time.Time
	StoppedAt       *time.Time
	HourlyRateCents int64
}

// TimeValue is the billable worth of a single time entry.
type TimeValue struct {
	Minutes int64
	Cents   int64
}

// ValuateTimeEntry resolves an entry's minutes and monetary value. An
// explicit positive duration wins; otherwise whole minutes between the
// start/stop pair (truncated) are used. The entry's own rate applies
// when positive, then the workspace default; with neither, the entry is
// worth nothing but its minutes still count. Cents are rounded half
// away from zero.
func ValuateTimeEntry(rec TimeEntryRecord, defaultRateCents int64) TimeValue {
	minutes := rec.DurationMinutes
	if minutes <= 0 {
		minutes = 0
		if rec.StartedAt != nil && rec.StoppedAt != nil && !rec.StoppedAt.Before(*rec.StartedAt) {
			minutes = int64(rec.StoppedAt.Sub(*rec.StartedAt) / time.Minute)
		}
	}

	rate := rec.HourlyRateCents
	if rate <= 0 {
		rate = defaultRateCents
	}
	if rate <= 0 || minutes == 0 {
		return TimeValue{Minutes: minutes}
	}

	cents := decimal.NewFromInt(minutes).
		Div(decimal.NewFromInt(60)).
		Mul(decimal.NewFromInt(rate)).
		Round(0).
		IntPart()

	return TimeValue{Minutes: minutes, Cents: cents}
}
