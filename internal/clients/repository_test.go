package clients

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestFindOrCreateCreatesOnce(t *testing.T) {
	repo := NewInMemoryRepository()

	first, err := repo.FindOrCreateByEmail(context.Background(), "eva@example.com", "Eva")
	if err != nil {
		t.Fatal(err)
	}
	if first.Name != "Eva" {
		t.Errorf("expected name Eva, got %s", first.Name)
	}

	// Re-booking with a different name must not rename the stored client.
	second, err := repo.FindOrCreateByEmail(context.Background(), "eva@example.com", "Evelien")
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != first.ID {
		t.Errorf("expected same client id, got %d and %d", first.ID, second.ID)
	}
	if second.Name != "Eva" {
		t.Errorf("existing name must be preserved, got %s", second.Name)
	}
}

func TestFindOrCreateRejectsEmptyEmail(t *testing.T) {
	repo := NewInMemoryRepository()
	if _, err := repo.FindOrCreateByEmail(context.Background(), "  ", "Eva"); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestGetByEmailUnknown(t *testing.T) {
	repo := NewInMemoryRepository()
	if _, err := repo.GetByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, ErrClientNotFound) {
		t.Errorf("expected ErrClientNotFound, got %v", err)
	}
}

func TestPostgresFindOrCreateFallsBackToSelect(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	// Insert hits the unique email and returns no row, then the select
	// reads the existing client.
	mock.ExpectQuery("INSERT INTO clients").
		WithArgs("Eva", "eva@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "phone"}))
	mock.ExpectQuery("SELECT id, name, email").
		WithArgs("eva@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "phone"}).
			AddRow(int64(4), "Eva Jansen", "eva@example.com", "0612345678"))

	repo := NewPostgresRepository(mock)
	c, err := repo.FindOrCreateByEmail(context.Background(), "eva@example.com", "Eva")
	if err != nil {
		t.Fatal(err)
	}
	if c.ID != 4 || c.Name != "Eva Jansen" {
		t.Errorf("unexpected client %+v", c)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPostgresFindOrCreateInsertsNew(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO clients").
		WithArgs("Eva", "eva@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "phone"}).
			AddRow(int64(1), "Eva", "eva@example.com", ""))

	repo := NewPostgresRepository(mock)
	c, err := repo.FindOrCreateByEmail(context.Background(), "eva@example.com", "Eva")
	if err != nil {
		t.Fatal(err)
	}
	if c.ID != 1 || c.Email != "eva@example.com" {
		t.Errorf("unexpected client %+v", c)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
