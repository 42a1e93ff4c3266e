package scheduling

import (
	"context"
	"fmt"
	"time"
)

// ConflictChecker answers whether a candidate appointment would overlap an
// existing one for the same employee.
type ConflictChecker struct {
	appointments AppointmentSource
}

// NewConflictChecker creates a checker reading from the given source.
func NewConflictChecker(appointments AppointmentSource) *ConflictChecker {
	if appointments == nil {
		panic("scheduling: appointment source required")
	}
	return &ConflictChecker{appointments: appointments}
}

// HasConflict reports whether [start, start+duration) intersects any booked
// interval for the employee on start's calendar date. Half-open semantics:
// an appointment finishing exactly at start is not a conflict.
func (c *ConflictChecker) HasConflict(ctx context.Context, employeeID int64, start time.Time, durationMinutes int) (bool, error) {
	if durationMinutes <= 0 {
		return false, fmt.Errorf("scheduling: duration must be positive, got %d", durationMinutes)
	}
	candidate := Interval{Start: start, Finish: start.Add(time.Duration(durationMinutes) * time.Minute)}

	booked, err := c.appointments.IntervalsFor(ctx, employeeID, start)
	if err != nil {
		return false, fmt.Errorf("scheduling: list booked intervals: %w", err)
	}
	for _, b := range booked {
		if b.Overlaps(candidate) {
			return true, nil
		}
	}
	return false, nil
}
