package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

type clientsDB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores clients in the relational database.
type PostgresRepository struct {
	db clientsDB
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(db clientsDB) *PostgresRepository {
	if db == nil {
		panic("clients: pgx pool required")
	}
	return &PostgresRepository{db: db}
}

// FindOrCreateByEmail inserts a client unless the email already exists. The
// ON CONFLICT DO NOTHING keeps concurrent first bookings from racing into
// duplicate rows; whichever insert loses falls through to the select and
// reads the winner's row, name and phone untouched.
func (r *PostgresRepository) FindOrCreateByEmail(ctx context.Context, email, name string) (*Client, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrInvalidEmail
	}

	insert := `
		INSERT INTO clients (name, email)
		VALUES ($1, $2)
		ON CONFLICT (email) DO NOTHING
		RETURNING id, name, email, COALESCE(phone, '')
	`
	var c Client
	err := r.db.QueryRow(ctx, insert, name, email).Scan(&c.ID, &c.Name, &c.Email, &c.Phone)
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("clients: insert failed: %w", err)
	}
	return r.GetByEmail(ctx, email)
}

// GetByEmail returns the client with this exact email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*Client, error) {
	query := `
		SELECT id, name, email, COALESCE(phone, '')
		FROM clients
		WHERE email = $1
	`
	var c Client
	if err := r.db.QueryRow(ctx, query, strings.TrimSpace(email)).Scan(&c.ID, &c.Name, &c.Email, &c.Phone); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("clients: select failed: %w", err)
	}
	return &c, nil
}
