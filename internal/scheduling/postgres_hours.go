package scheduling

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// hoursDB is the slice of pgxpool.Pool the hours store needs; pgxmock
// satisfies it in tests.
type hoursDB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresHoursStore reads the opening_hours table, one row per weekday.
type PostgresHoursStore struct {
	db hoursDB
}

// NewPostgresHoursStore initializes a store backed by pgx.
func NewPostgresHoursStore(db hoursDB) *PostgresHoursStore {
	if db == nil {
		panic("scheduling: pgx pool required")
	}
	return &PostgresHoursStore{db: db}
}

// DayHours returns the row for weekday, or nil when the salon has no record
// for that day.
func (s *PostgresHoursStore) DayHours(ctx context.Context, weekday string) (*DayHours, error) {
	query := `
		SELECT day, COALESCE(opening_time::text, ''), COALESCE(closing_time::text, ''), closed
		FROM opening_hours
		WHERE day = $1
	`
	var d DayHours
	if err := s.db.QueryRow(ctx, query, weekday).Scan(&d.Weekday, &d.OpensAt, &d.ClosesAt, &d.Closed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scheduling: select opening hours: %w", err)
	}
	return &d, nil
}
