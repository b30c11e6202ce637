// Package clock owns time for the auction core: a Clock interface so tests
// can pin "now", and the TimeWindow that defines the daily allowance cycle.
package clock

import (
	"fmt"
	"time"
)

// Default reference settings. The allowance day rolls over at a fixed local
// hour in a fixed civil timezone regardless of where the caller is.
const (
	DefaultReferenceZone = "America/New_York"
	DefaultResetHour     = 4
)

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// System is a Clock backed by the system clock, reporting UTC instants.
type System struct{}

func (System) Now() time.Time { return time.Now().UTC() }

// TimeWindow computes allowance-cycle boundaries in a reference civil
// timezone and answers expiry comparisons.
type TimeWindow struct {
	loc       *time.Location
	resetHour int
}

// NewTimeWindow loads the reference timezone by name. resetHour is the local
// wall-clock hour at which a new allowance cycle begins.
func NewTimeWindow(zone string, resetHour int) (*TimeWindow, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load reference timezone %q: %w", zone, err)
	}
	if resetHour < 0 || resetHour > 23 {
		return nil, fmt.Errorf("reset hour %d out of range", resetHour)
	}
	return &TimeWindow{loc: loc, resetHour: resetHour}, nil
}

// AllowanceThreshold returns the start of the allowance cycle containing at:
// the reset hour on the current reference-timezone calendar day, or on the
// previous day when the local hour is still before the reset hour.
func (w *TimeWindow) AllowanceThreshold(at time.Time) time.Time {
	local := at.In(w.loc)
	day := local
	if local.Hour() < w.resetHour {
		day = local.AddDate(0, 0, -1)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), w.resetHour, 0, 0, 0, w.loc)
}

// DayStart returns midnight of the reference-timezone calendar day holding at.
func (w *TimeWindow) DayStart(at time.Time) time.Time {
	local := at.In(w.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, w.loc)
}

// IsExpired reports whether expiresAt has been reached at instant at.
func (w *TimeWindow) IsExpired(expiresAt, at time.Time) bool {
	return !at.Before(expiresAt)
}
