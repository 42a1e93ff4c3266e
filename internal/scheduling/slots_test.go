package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/rimmelzwaan/salon-booking/pkg/logging"
)

func newTestGenerator(schedule *WeekSchedule, durations fixedDurations, appts *memoryAppointments) *SlotGenerator {
	provider := NewOpeningHoursProvider(schedule, time.UTC)
	checker := NewConflictChecker(appts)
	return NewSlotGenerator(provider, durations, checker, logging.Default())
}

func openSchedule(weekday, opens, closes string) *WeekSchedule {
	s := NewWeekSchedule()
	s.Set(DayHours{Weekday: weekday, OpensAt: opens, ClosesAt: closes})
	return s
}

func TestGenerateSlotsFullOpenDay(t *testing.T) {
	// 2026-03-10 is a Tuesday.
	schedule := openSchedule("tuesday", "09:00", "17:00")
	gen := newTestGenerator(schedule, fixedDurations{1: 30}, newMemoryAppointments())

	slots, err := gen.GenerateSlots(context.Background(), testDay, 1, 1)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}

	if len(slots) != 16 {
		t.Fatalf("expected 16 slots for 09:00-17:00 at 30m, got %d: %v", len(slots), slots)
	}
	if slots[0] != "09:00" {
		t.Errorf("first slot should be 09:00, got %s", slots[0])
	}
	if slots[1] != "09:30" {
		t.Errorf("second slot should be 09:30, got %s", slots[1])
	}
	if slots[len(slots)-1] != "16:30" {
		t.Errorf("last slot should be 16:30, got %s", slots[len(slots)-1])
	}
}

func TestGenerateSlotsBounds(t *testing.T) {
	schedule := openSchedule("tuesday", "09:00", "17:00")
	duration := 45
	gen := newTestGenerator(schedule, fixedDurations{1: duration}, newMemoryAppointments())

	slots, err := gen.GenerateSlots(context.Background(), testDay, 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	opens := at(testDay, "09:00")
	closes := at(testDay, "17:00")
	for _, s := range slots {
		start := at(testDay, s)
		if start.Before(opens) {
			t.Errorf("slot %s starts before opening", s)
		}
		if at(testDay, s).Add(time.Duration(duration)*time.Minute).After(closes) {
			t.Errorf("slot %s would finish after closing", s)
		}
	}
}

func TestGenerateSlotsExcludesBookedTime(t *testing.T) {
	schedule := openSchedule("tuesday", "09:00", "17:00")
	appts := newMemoryAppointments()
	appts.add(5, at(testDay, "10:00"), at(testDay, "10:30"))
	gen := newTestGenerator(schedule, fixedDurations{1: 30}, appts)

	slots, err := gen.GenerateSlots(context.Background(), testDay, 5, 1)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range slots {
		if s == "10:00" {
			t.Fatal("10:00 is booked and must not be offered")
		}
	}
	if len(slots) != 15 {
		t.Errorf("expected 15 free slots, got %d", len(slots))
	}

	// The same slot stays available for a different employee.
	other, err := gen.GenerateSlots(context.Background(), testDay, 6, 1)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, s := range other {
		if s == "10:00" {
			found = true
		}
	}
	if !found {
		t.Error("10:00 should remain available for an unbooked employee")
	}
}

func TestGenerateSlotsClosedDayIsEmpty(t *testing.T) {
	schedule := NewWeekSchedule()
	schedule.Set(DayHours{Weekday: "tuesday", OpensAt: "09:00", ClosesAt: "17:00", Closed: true})
	appts := newMemoryAppointments()
	appts.add(1, at(testDay, "10:00"), at(testDay, "10:30"))
	gen := newTestGenerator(schedule, fixedDurations{1: 30}, appts)

	slots, err := gen.GenerateSlots(context.Background(), testDay, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 0 {
		t.Errorf("closed day must yield no slots, got %v", slots)
	}
}

func TestGenerateSlotsMissingWeekdayIsClosed(t *testing.T) {
	gen := newTestGenerator(NewWeekSchedule(), fixedDurations{1: 30}, newMemoryAppointments())

	slots, err := gen.GenerateSlots(context.Background(), testDay, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 0 {
		t.Errorf("missing weekday record must read as closed, got %v", slots)
	}
}

func TestGenerateSlotsTreatmentDoesNotFit(t *testing.T) {
	schedule := openSchedule("tuesday", "09:00", "09:15")
	gen := newTestGenerator(schedule, fixedDurations{1: 30}, newMemoryAppointments())

	slots, err := gen.GenerateSlots(context.Background(), testDay, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 0 {
		t.Errorf("treatment longer than the open window must yield no slots, got %v", slots)
	}
}

func TestGenerateSlotsDefaultsMissingDuration(t *testing.T) {
	schedule := openSchedule("tuesday", "16:00", "17:00")
	// Treatment 9 has no recorded duration; the 30-minute fallback applies.
	gen := newTestGenerator(schedule, fixedDurations{}, newMemoryAppointments())

	slots, err := gen.GenerateSlots(context.Background(), testDay, 1, 9)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots with fallback duration, got %v", slots)
	}
	if slots[0] != "16:00" || slots[1] != "16:30" {
		t.Errorf("unexpected slots %v", slots)
	}
}

func TestGenerateSlotsLongTreatmentStillGridAligned(t *testing.T) {
	schedule := openSchedule("tuesday", "09:00", "12:00")
	gen := newTestGenerator(schedule, fixedDurations{2: 90}, newMemoryAppointments())

	slots, err := gen.GenerateSlots(context.Background(), testDay, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	// 90-minute treatment on a 30-minute grid: last fitting start is 10:30.
	want := []string{"09:00", "09:30", "10:00", "10:30"}
	if len(slots) != len(want) {
		t.Fatalf("expected %v, got %v", want, slots)
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Errorf("slot %d: expected %s, got %s", i, want[i], slots[i])
		}
	}
}
