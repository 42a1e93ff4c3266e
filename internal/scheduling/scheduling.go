// Package scheduling computes bookable time slots for the public booking
// wizard: per-weekday opening hours, the fixed booking grid, and the overlap
// rule that keeps one employee from being booked twice.
package scheduling

import (
	"context"
	"time"
)

const (
	// SlotGranularityMinutes is the booking grid step. Candidate start times
	// advance by this amount regardless of treatment duration, so short
	// treatments always land on :00/:30. Changing this to something
	// duration-derived needs product sign-off first.
	SlotGranularityMinutes = 30

	// DefaultTreatmentDurationMinutes is the fallback when a treatment row
	// carries no duration. Not a valid business state, just a floor.
	DefaultTreatmentDurationMinutes = 30
)

// Interval is a half-open [Start, Finish) time range.
type Interval struct {
	Start  time.Time
	Finish time.Time
}

// Overlaps reports whether two half-open intervals intersect. Intervals that
// merely touch at a boundary do not overlap; back-to-back appointments are
// allowed.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.Finish) && i.Finish.After(other.Start)
}

// Window is one day's opening hours resolved onto a concrete date.
type Window struct {
	OpensAt  time.Time
	ClosesAt time.Time
}

// HoursProvider resolves the opening-hours window for a calendar date.
// ok is false when the salon is closed that day.
type HoursProvider interface {
	HoursFor(ctx context.Context, date time.Time) (w Window, ok bool, err error)
}

// AppointmentSource lists the booked intervals for an employee on a date.
type AppointmentSource interface {
	IntervalsFor(ctx context.Context, employeeID int64, date time.Time) ([]Interval, error)
}

// TreatmentDurations resolves a treatment's duration in minutes.
// A zero duration means the treatment has none recorded.
type TreatmentDurations interface {
	DurationMinutes(ctx context.Context, treatmentID int64) (int, error)
}
