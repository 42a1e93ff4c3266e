package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rimmelzwaan/salon-booking/internal/scheduling"
)

type apptDB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores appointments in the relational database.
type PostgresRepository struct {
	db apptDB
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(db apptDB) *PostgresRepository {
	if db == nil {
		panic("appointments: pgx pool required")
	}
	return &PostgresRepository{db: db}
}

// CreateIfFree re-checks the overlap inside a transaction right before the
// insert. The schema's per-employee exclusion constraint is the backstop for
// anything the re-check races with, so a constraint violation maps to the
// same ErrSlotUnavailable the re-check produces.
func (r *PostgresRepository) CreateIfFree(ctx context.Context, appt *Appointment) (*Appointment, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("appointments: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	overlapCheck := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE employee_id = $1
			  AND start_time < $3
			  AND finish_time > $2
		)
	`
	var taken bool
	if err := tx.QueryRow(ctx, overlapCheck, appt.EmployeeID, appt.Start, appt.Finish).Scan(&taken); err != nil {
		return nil, fmt.Errorf("appointments: overlap check: %w", err)
	}
	if taken {
		return nil, ErrSlotUnavailable
	}

	insert := `
		INSERT INTO appointments (start_time, finish_time, employee_id, client_id, treatment_id, status, confirmation_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	stored := *appt
	err = tx.QueryRow(ctx, insert,
		appt.Start,
		appt.Finish,
		appt.EmployeeID,
		appt.ClientID,
		appt.TreatmentID,
		string(appt.Status),
		appt.ConfirmationToken,
	).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		if isOverlapViolation(err) {
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("appointments: insert failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isOverlapViolation(err) {
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("appointments: commit: %w", err)
	}
	return &stored, nil
}

// ConfirmByToken flips status and clears the token in one statement, which
// makes redemption one-time by construction.
func (r *PostgresRepository) ConfirmByToken(ctx context.Context, token string) (*Appointment, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	query := `
		UPDATE appointments
		SET status = $1, confirmation_token = NULL
		WHERE confirmation_token = $2
		RETURNING id, start_time, finish_time, employee_id, client_id, treatment_id, created_at
	`
	var a Appointment
	err := r.db.QueryRow(ctx, query, string(StatusConfirmed), token).Scan(
		&a.ID, &a.Start, &a.Finish, &a.EmployeeID, &a.ClientID, &a.TreatmentID, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("appointments: confirm: %w", err)
	}
	a.Status = StatusConfirmed
	return &a, nil
}

// IntervalsFor lists booked intervals for an employee on date's calendar day.
func (r *PostgresRepository) IntervalsFor(ctx context.Context, employeeID int64, date time.Time) ([]scheduling.Interval, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := `
		SELECT start_time, finish_time
		FROM appointments
		WHERE employee_id = $1
		  AND start_time >= $2
		  AND start_time < $3
		ORDER BY start_time
	`
	rows, err := r.db.Query(ctx, query, employeeID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("appointments: list intervals: %w", err)
	}
	defer rows.Close()

	var out []scheduling.Interval
	for rows.Next() {
		var iv scheduling.Interval
		if err := rows.Scan(&iv.Start, &iv.Finish); err != nil {
			return nil, fmt.Errorf("appointments: scan interval: %w", err)
		}
		out = append(out, iv)
	}
	return out, rows.Err()
}

// isOverlapViolation matches the appointments_no_overlap exclusion constraint
// and any unique fallback, both of which mean the slot was lost to a
// concurrent booking.
func isOverlapViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23P01" || pgErr.Code == "23505"
}
