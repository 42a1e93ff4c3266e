package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/rimmelzwaan/salon-booking/pkg/logging"
)

// SlotGenerator produces the free start times offered to the booking wizard.
// Results are recomputed on every call so they always reflect the current
// appointment book.
type SlotGenerator struct {
	hours     HoursProvider
	durations TreatmentDurations
	conflicts *ConflictChecker
	logger    *logging.Logger
}

// NewSlotGenerator wires a generator from its three collaborators.
func NewSlotGenerator(hours HoursProvider, durations TreatmentDurations, conflicts *ConflictChecker, logger *logging.Logger) *SlotGenerator {
	if hours == nil || durations == nil || conflicts == nil {
		panic("scheduling: hours, durations and conflict checker required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SlotGenerator{hours: hours, durations: durations, conflicts: conflicts, logger: logger}
}

// GenerateSlots returns the bookable "HH:MM" start times for an employee,
// date and treatment, in ascending order. A closed day yields an empty slice.
//
// Candidates walk from opening time in SlotGranularityMinutes steps while the
// full treatment still fits before closing; each surviving candidate is one
// the conflict checker cleared.
func (g *SlotGenerator) GenerateSlots(ctx context.Context, date time.Time, employeeID, treatmentID int64) ([]string, error) {
	window, open, err := g.hours.HoursFor(ctx, date)
	if err != nil {
		return nil, err
	}
	if !open {
		return []string{}, nil
	}

	durationMinutes, err := g.durations.DurationMinutes(ctx, treatmentID)
	if err != nil {
		return nil, fmt.Errorf("scheduling: resolve treatment duration: %w", err)
	}
	if durationMinutes <= 0 {
		durationMinutes = DefaultTreatmentDurationMinutes
	}
	duration := time.Duration(durationMinutes) * time.Minute
	step := SlotGranularityMinutes * time.Minute

	slots := []string{}
	for start := window.OpensAt; !start.Add(duration).After(window.ClosesAt); start = start.Add(step) {
		conflict, err := g.conflicts.HasConflict(ctx, employeeID, start, durationMinutes)
		if err != nil {
			return nil, err
		}
		if !conflict {
			slots = append(slots, start.Format("15:04"))
		}
	}

	g.logger.Debug("slots generated",
		"employee_id", employeeID,
		"treatment_id", treatmentID,
		"date", date.Format("2006-01-02"),
		"count", len(slots),
	)
	return slots, nil
}
