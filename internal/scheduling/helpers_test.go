package scheduling

import (
	"context"
	"time"
)

// memoryAppointments is a fixed in-memory AppointmentSource for tests.
type memoryAppointments struct {
	byEmployee map[int64][]Interval
}

func newMemoryAppointments() *memoryAppointments {
	return &memoryAppointments{byEmployee: make(map[int64][]Interval)}
}

func (m *memoryAppointments) add(employeeID int64, start, finish time.Time) {
	m.byEmployee[employeeID] = append(m.byEmployee[employeeID], Interval{Start: start, Finish: finish})
}

func (m *memoryAppointments) IntervalsFor(_ context.Context, employeeID int64, date time.Time) ([]Interval, error) {
	var out []Interval
	y, mo, d := date.Date()
	for _, iv := range m.byEmployee[employeeID] {
		iy, imo, id := iv.Start.Date()
		if iy == y && imo == mo && id == d {
			out = append(out, iv)
		}
	}
	return out, nil
}

// fixedDurations resolves every treatment to the same duration.
type fixedDurations map[int64]int

func (f fixedDurations) DurationMinutes(_ context.Context, treatmentID int64) (int, error) {
	return f[treatmentID], nil
}

func at(day time.Time, hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		panic(err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location())
}
