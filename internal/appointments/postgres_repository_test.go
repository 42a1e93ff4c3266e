package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func testAppointment() *Appointment {
	start := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	return &Appointment{
		Start:             start,
		Finish:            start.Add(30 * time.Minute),
		EmployeeID:        5,
		ClientID:          3,
		TreatmentID:       1,
		Status:            StatusWaitingForConfirmation,
		ConfirmationToken: "tok-abc",
	}
}

func TestCreateIfFreeInsertsInsideTransaction(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	appt := testAppointment()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(appt.EmployeeID, appt.Start, appt.Finish).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs(appt.Start, appt.Finish, appt.EmployeeID, appt.ClientID, appt.TreatmentID, string(appt.Status), appt.ConfirmationToken).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), time.Now().UTC()))
	mock.ExpectCommit()

	repo := NewPostgresRepository(mock)
	created, err := repo.CreateIfFree(context.Background(), appt)
	if err != nil {
		t.Fatalf("CreateIfFree: %v", err)
	}
	if created.ID != 11 {
		t.Errorf("expected id 11, got %d", created.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreateIfFreeRejectsWhenRecheckFindsOverlap(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	appt := testAppointment()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(appt.EmployeeID, appt.Start, appt.Finish).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	repo := NewPostgresRepository(mock)
	if _, err := repo.CreateIfFree(context.Background(), appt); !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("expected ErrSlotUnavailable, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreateIfFreeMapsExclusionViolation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	appt := testAppointment()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(appt.EmployeeID, appt.Start, appt.Finish).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs(appt.Start, appt.Finish, appt.EmployeeID, appt.ClientID, appt.TreatmentID, string(appt.Status), appt.ConfirmationToken).
		WillReturnError(&pgconn.PgError{Code: "23P01", ConstraintName: "appointments_no_overlap"})
	mock.ExpectRollback()

	repo := NewPostgresRepository(mock)
	if _, err := repo.CreateIfFree(context.Background(), appt); !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("expected ErrSlotUnavailable for exclusion violation, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// The UPDATE clears the token by setting it to NULL, which only works because
// the schema keeps confirmation_token nullable (the migration guard covers
// that side).
func TestConfirmByTokenClearsTokenAndReturnsAppointment(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	start := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`UPDATE appointments\s+SET status = \$1, confirmation_token = NULL`).
		WithArgs(string(StatusConfirmed), "tok-abc").
		WillReturnRows(pgxmock.NewRows([]string{"id", "start_time", "finish_time", "employee_id", "client_id", "treatment_id", "created_at"}).
			AddRow(int64(11), start, start.Add(30*time.Minute), int64(5), int64(3), int64(1), time.Now().UTC()))

	repo := NewPostgresRepository(mock)
	confirmed, err := repo.ConfirmByToken(context.Background(), "tok-abc")
	if err != nil {
		t.Fatalf("ConfirmByToken: %v", err)
	}
	if confirmed.Status != StatusConfirmed {
		t.Errorf("expected status %s, got %s", StatusConfirmed, confirmed.Status)
	}
	if confirmed.ID != 11 {
		t.Errorf("expected id 11, got %d", confirmed.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestConfirmByTokenUnknownToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("UPDATE appointments").
		WithArgs(string(StatusConfirmed), "ghost").
		WillReturnRows(pgxmock.NewRows([]string{"id", "start_time", "finish_time", "employee_id", "client_id", "treatment_id", "created_at"}))

	repo := NewPostgresRepository(mock)
	if _, err := repo.ConfirmByToken(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestIntervalsForScansDayRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	s1 := day.Add(10 * time.Hour)
	rows := pgxmock.NewRows([]string{"start_time", "finish_time"}).
		AddRow(s1, s1.Add(30*time.Minute))
	mock.ExpectQuery("SELECT start_time, finish_time").
		WithArgs(int64(5), day, day.AddDate(0, 0, 1)).
		WillReturnRows(rows)

	repo := NewPostgresRepository(mock)
	got, err := repo.IntervalsFor(context.Background(), 5, day.Add(14*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || !got[0].Start.Equal(s1) {
		t.Errorf("unexpected intervals %v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
