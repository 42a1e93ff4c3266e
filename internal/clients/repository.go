package clients

import (
	"context"
	"strings"
	"sync"
)

// Repository defines client storage for the booking flow.
type Repository interface {
	// FindOrCreateByEmail returns the client with this exact email, creating
	// one with the supplied name if none exists. An existing client's stored
	// name and phone are never modified here.
	FindOrCreateByEmail(ctx context.Context, email, name string) (*Client, error)
	GetByEmail(ctx context.Context, email string) (*Client, error)
}

// InMemoryRepository keeps clients in a map keyed by email.
type InMemoryRepository struct {
	mu      sync.Mutex
	nextID  int64
	byEmail map[string]*Client
}

// NewInMemoryRepository creates an empty in-memory client store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1, byEmail: make(map[string]*Client)}
}

// FindOrCreateByEmail implements Repository.
func (r *InMemoryRepository) FindOrCreateByEmail(_ context.Context, email, name string) (*Client, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrInvalidEmail
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.byEmail[email]; ok {
		copied := *c
		return &copied, nil
	}
	c := &Client{ID: r.nextID, Name: name, Email: email}
	r.nextID++
	r.byEmail[email] = c
	copied := *c
	return &copied, nil
}

// GetByEmail returns the client with this email.
func (r *InMemoryRepository) GetByEmail(_ context.Context, email string) (*Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byEmail[strings.TrimSpace(email)]
	if !ok {
		return nil, ErrClientNotFound
	}
	copied := *c
	return &copied, nil
}
