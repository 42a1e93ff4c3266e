package appointments

import (
	"context"
	"sync"
	"time"

	"github.com/rimmelzwaan/salon-booking/internal/scheduling"
)

// Repository defines appointment storage. Implementations must make
// CreateIfFree atomic with respect to the overlap check: of two concurrent
// creations for the same employee and overlapping window, at most one may
// succeed.
type Repository interface {
	// CreateIfFree persists the appointment unless it would overlap an
	// existing one for the same employee, in which case it returns
	// ErrSlotUnavailable.
	CreateIfFree(ctx context.Context, appt *Appointment) (*Appointment, error)

	// ConfirmByToken atomically flips the appointment with this token to
	// confirmed and clears the token. Unknown or already redeemed tokens
	// return ErrNotFound.
	ConfirmByToken(ctx context.Context, token string) (*Appointment, error)

	// IntervalsFor lists booked intervals for the slot generator.
	IntervalsFor(ctx context.Context, employeeID int64, date time.Time) ([]scheduling.Interval, error)
}

// InMemoryRepository keeps appointments in memory. The single mutex
// serializes check-then-insert, which is the same guarantee the Postgres
// implementation gets from its transaction plus exclusion constraint.
type InMemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   []*Appointment
}

// NewInMemoryRepository creates an empty in-memory appointment store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

// CreateIfFree implements Repository.
func (r *InMemoryRepository) CreateIfFree(_ context.Context, appt *Appointment) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	candidate := scheduling.Interval{Start: appt.Start, Finish: appt.Finish}
	for _, existing := range r.rows {
		if existing.EmployeeID != appt.EmployeeID {
			continue
		}
		booked := scheduling.Interval{Start: existing.Start, Finish: existing.Finish}
		if booked.Overlaps(candidate) {
			return nil, ErrSlotUnavailable
		}
	}

	stored := *appt
	stored.ID = r.nextID
	stored.CreatedAt = time.Now().UTC()
	r.nextID++
	r.rows = append(r.rows, &stored)
	copied := stored
	return &copied, nil
}

// ConfirmByToken implements Repository.
func (r *InMemoryRepository) ConfirmByToken(_ context.Context, token string) (*Appointment, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.rows {
		if a.ConfirmationToken == token {
			a.Status = StatusConfirmed
			a.ConfirmationToken = ""
			copied := *a
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

// IntervalsFor implements scheduling.AppointmentSource.
func (r *InMemoryRepository) IntervalsFor(_ context.Context, employeeID int64, date time.Time) ([]scheduling.Interval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	y, m, d := date.Date()
	var out []scheduling.Interval
	for _, a := range r.rows {
		if a.EmployeeID != employeeID {
			continue
		}
		ay, am, ad := a.Start.Date()
		if ay == y && am == m && ad == d {
			out = append(out, scheduling.Interval{Start: a.Start, Finish: a.Finish})
		}
	}
	return out, nil
}
