package scheduling

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// DayHours is the stored opening-hours record for one weekday.
// Times are "HH:MM" strings in the business time zone.
type DayHours struct {
	Weekday  string
	OpensAt  string
	ClosesAt string
	Closed   bool
}

// HoursStore loads the opening-hours record for a weekday name
// (lowercase English, e.g. "monday"). A nil record means no row exists,
// which callers treat the same as closed.
type HoursStore interface {
	DayHours(ctx context.Context, weekday string) (*DayHours, error)
}

// OpeningHoursProvider resolves stored weekday hours onto concrete dates in
// the business time zone.
type OpeningHoursProvider struct {
	store HoursStore
	loc   *time.Location
}

// NewOpeningHoursProvider creates a provider. loc is the single business
// time zone all scheduling arithmetic happens in.
func NewOpeningHoursProvider(store HoursStore, loc *time.Location) *OpeningHoursProvider {
	if store == nil {
		panic("scheduling: hours store required")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &OpeningHoursProvider{store: store, loc: loc}
}

// HoursFor returns the opening window for date. A missing weekday record and
// an explicit closed flag both come back as ok=false without error.
func (p *OpeningHoursProvider) HoursFor(ctx context.Context, date time.Time) (Window, bool, error) {
	day := date.In(p.loc)
	weekday := strings.ToLower(day.Weekday().String())

	rec, err := p.store.DayHours(ctx, weekday)
	if err != nil {
		return Window{}, false, fmt.Errorf("scheduling: load hours for %s: %w", weekday, err)
	}
	if rec == nil || rec.Closed {
		return Window{}, false, nil
	}

	opens, err := atTimeOfDay(day, rec.OpensAt, p.loc)
	if err != nil {
		return Window{}, false, fmt.Errorf("scheduling: bad opening time %q for %s: %w", rec.OpensAt, weekday, err)
	}
	closes, err := atTimeOfDay(day, rec.ClosesAt, p.loc)
	if err != nil {
		return Window{}, false, fmt.Errorf("scheduling: bad closing time %q for %s: %w", rec.ClosesAt, weekday, err)
	}
	if !opens.Before(closes) {
		return Window{}, false, fmt.Errorf("scheduling: %s opens %s at or after close %s", weekday, rec.OpensAt, rec.ClosesAt)
	}
	return Window{OpensAt: opens, ClosesAt: closes}, true, nil
}

// atTimeOfDay anchors an "HH:MM" string onto date's calendar day in loc.
func atTimeOfDay(date time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(hhmm))
	if err != nil {
		// Postgres TIME columns scan as "HH:MM:SS".
		t, err = time.Parse("15:04:05", strings.TrimSpace(hhmm))
		if err != nil {
			return time.Time{}, err
		}
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// WeekSchedule is an in-memory HoursStore keyed by weekday name. Used by
// tests and by deployments that configure hours statically.
type WeekSchedule struct {
	mu   sync.RWMutex
	days map[string]DayHours
}

// NewWeekSchedule creates an empty schedule; unset weekdays read as closed.
func NewWeekSchedule() *WeekSchedule {
	return &WeekSchedule{days: make(map[string]DayHours)}
}

// Set stores hours for a weekday, replacing any existing record.
func (s *WeekSchedule) Set(d DayHours) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.days[strings.ToLower(d.Weekday)] = d
}

// DayHours returns the record for weekday, or nil when none is set.
func (s *WeekSchedule) DayHours(_ context.Context, weekday string) (*DayHours, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.days[strings.ToLower(weekday)]
	if !ok {
		return nil, nil
	}
	return &d, nil
}
