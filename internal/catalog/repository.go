package catalog

import (
	"context"
	"sync"
)

// Repository defines read access to the treatment/employee catalog. The
// admin CRUD that maintains it lives outside this service; booking only
// ever reads.
type Repository interface {
	GetTreatment(ctx context.Context, id int64) (*Treatment, error)
	ListActiveTreatments(ctx context.Context) ([]*Treatment, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	GetEmployee(ctx context.Context, id int64) (*Employee, error)
	EmployeesForTreatment(ctx context.Context, treatmentID int64) ([]*Employee, error)
}

// InMemoryRepository is a Repository over in-memory maps, used by tests and
// local development.
type InMemoryRepository struct {
	mu          sync.RWMutex
	treatments  map[int64]*Treatment
	categories  map[int64]*Category
	employees   map[int64]*Employee
	eligibility map[int64][]int64 // treatment id -> employee ids
}

// NewInMemoryRepository creates an empty in-memory catalog.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		treatments:  make(map[int64]*Treatment),
		categories:  make(map[int64]*Category),
		employees:   make(map[int64]*Employee),
		eligibility: make(map[int64][]int64),
	}
}

// AddCategory stores a category.
func (r *InMemoryRepository) AddCategory(c Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[c.ID] = &c
}

// AddTreatment stores a treatment.
func (r *InMemoryRepository) AddTreatment(t Treatment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.treatments[t.ID] = &t
}

// AddEmployee stores an employee and marks which treatments they perform.
func (r *InMemoryRepository) AddEmployee(e Employee, treatmentIDs ...int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.employees[e.ID] = &e
	for _, tid := range treatmentIDs {
		r.eligibility[tid] = append(r.eligibility[tid], e.ID)
	}
}

// GetTreatment returns a treatment by id.
func (r *InMemoryRepository) GetTreatment(_ context.Context, id int64) (*Treatment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.treatments[id]
	if !ok {
		return nil, ErrTreatmentNotFound
	}
	copied := *t
	return &copied, nil
}

// ListActiveTreatments returns all active treatments.
func (r *InMemoryRepository) ListActiveTreatments(_ context.Context) ([]*Treatment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Treatment
	for _, t := range r.treatments {
		if t.Active {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

// ListCategories returns all categories.
func (r *InMemoryRepository) ListCategories(_ context.Context) ([]*Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Category
	for _, c := range r.categories {
		copied := *c
		out = append(out, &copied)
	}
	return out, nil
}

// GetEmployee returns an employee by id.
func (r *InMemoryRepository) GetEmployee(_ context.Context, id int64) (*Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.employees[id]
	if !ok {
		return nil, ErrEmployeeNotFound
	}
	copied := *e
	return &copied, nil
}

// EmployeesForTreatment returns the employees eligible to perform a treatment.
func (r *InMemoryRepository) EmployeesForTreatment(_ context.Context, treatmentID int64) ([]*Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Employee
	for _, eid := range r.eligibility[treatmentID] {
		if e, ok := r.employees[eid]; ok {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}
