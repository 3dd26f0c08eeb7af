package sessions

import (
	"errors"
	"sync"

	apperrors "github.com/tidyplan/todo-gateway/internal/errors"
)

// InMemoryRepo is a thread-safe in-memory implementation of the Repo interface
type InMemoryRepo struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewInMemoryRepo creates a new in-memory session repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		records: make(map[string]*Record),
	}
}

// Upsert stores or updates a session record
func (r *InMemoryRepo) Upsert(sessionID string, record *Record) error {
	if sessionID == "" {
		return errors.New("sessionID cannot be empty")
	}
	if record == nil {
		return errors.New("record cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Store a copy to prevent external modifications
	r.records[sessionID] = record.Clone()
	return nil
}

// Get retrieves a session record by session ID
func (r *InMemoryRepo) Get(sessionID string) (*Record, error) {
	if sessionID == "" {
		return nil, errors.New("sessionID cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[sessionID]
	if !exists {
		return nil, apperrors.ErrSessionNotFound
	}

	// Return a copy to prevent external modifications
	return record.Clone(), nil
}

// Delete removes a session record
func (r *InMemoryRepo) Delete(sessionID string) error {
	if sessionID == "" {
		return errors.New("sessionID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, sessionID)
	return nil
}
