package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type catalogDB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository reads the catalog tables maintained by the back office.
type PostgresRepository struct {
	db catalogDB
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(db catalogDB) *PostgresRepository {
	if db == nil {
		panic("catalog: pgx pool required")
	}
	return &PostgresRepository{db: db}
}

// GetTreatment returns a treatment by id.
func (r *PostgresRepository) GetTreatment(ctx context.Context, id int64) (*Treatment, error) {
	query := `
		SELECT id, name, price_cents, COALESCE(duration_minutes, 0), active, category_id
		FROM treatments
		WHERE id = $1
	`
	var t Treatment
	if err := r.db.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.PriceCents, &t.DurationMinutes, &t.Active, &t.CategoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTreatmentNotFound
		}
		return nil, fmt.Errorf("catalog: select treatment: %w", err)
	}
	return &t, nil
}

// ListActiveTreatments returns active treatments that at least one employee
// can perform, the only ones the wizard may offer.
func (r *PostgresRepository) ListActiveTreatments(ctx context.Context) ([]*Treatment, error) {
	query := `
		SELECT t.id, t.name, t.price_cents, COALESCE(t.duration_minutes, 0), t.active, t.category_id
		FROM treatments t
		WHERE t.active
		  AND EXISTS (SELECT 1 FROM employee_treatments et WHERE et.treatment_id = t.id)
		ORDER BY t.id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("catalog: list treatments: %w", err)
	}
	defer rows.Close()

	var out []*Treatment
	for rows.Next() {
		var t Treatment
		if err := rows.Scan(&t.ID, &t.Name, &t.PriceCents, &t.DurationMinutes, &t.Active, &t.CategoryID); err != nil {
			return nil, fmt.Errorf("catalog: scan treatment: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// ListCategories returns all categories in id order.
func (r *PostgresRepository) ListCategories(ctx context.Context) ([]*Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("catalog: list categories: %w", err)
	}
	defer rows.Close()

	var out []*Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("catalog: scan category: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// GetEmployee returns an employee by id.
func (r *PostgresRepository) GetEmployee(ctx context.Context, id int64) (*Employee, error) {
	query := `SELECT id, first_name, last_name FROM employees WHERE id = $1`
	var e Employee
	if err := r.db.QueryRow(ctx, query, id).Scan(&e.ID, &e.FirstName, &e.LastName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("catalog: select employee: %w", err)
	}
	return &e, nil
}

// EmployeesForTreatment returns employees linked to a treatment via the
// employee_treatments join table.
func (r *PostgresRepository) EmployeesForTreatment(ctx context.Context, treatmentID int64) ([]*Employee, error) {
	query := `
		SELECT e.id, e.first_name, e.last_name
		FROM employees e
		JOIN employee_treatments et ON et.employee_id = e.id
		WHERE et.treatment_id = $1
		ORDER BY e.id
	`
	rows, err := r.db.Query(ctx, query, treatmentID)
	if err != nil {
		return nil, fmt.Errorf("catalog: list eligible employees: %w", err)
	}
	defer rows.Close()

	var out []*Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName); err != nil {
			return nil, fmt.Errorf("catalog: scan employee: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
