package search

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu       sync.RWMutex
	searches map[string]*Search
}

// NewInMemoryRepository creates a new in-memory search repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		searches: make(map[string]*Search),
	}
}

// Create records a new search.
func (r *InMemoryRepository) Create(_ context.Context, s *Search) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *s
	r.searches[s.ID] = &cpy
	return nil
}

// GetByUserAndID retrieves a search by user ID and search ID.
func (r *InMemoryRepository) GetByUserAndID(_ context.Context, userID, searchID string) (*Search, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.searches[searchID]
	if !ok || s.UserID != userID {
		return nil, ErrSearchNotFound
	}

	// Return a copy
	cpy := *s
	return &cpy, nil
}

// List retrieves searches for a user, newest first, with pagination.
func (r *InMemoryRepository) List(_ context.Context, userID string, opts ListOptions) (*ListResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var searches []*Search
	for _, s := range r.searches {
		if s.UserID == userID {
			cpy := *s
			searches = append(searches, &cpy)
		}
	}

	sort.Slice(searches, func(i, j int) bool {
		return searches[i].SearchedAt.After(searches[j].SearchedAt)
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	result := &ListResult{
		Items: searches,
	}

	if len(searches) > limit {
		result.Items = searches[:limit]
		result.NextCursor = searches[limit-1].ID
	}

	return result, nil
}

// Delete deletes a search by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.searches, id)
	return nil
}

// DeleteAllForUser deletes all searches for a user.
func (r *InMemoryRepository) DeleteAllForUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, s := range r.searches {
		if s.UserID == userID {
			delete(r.searches, id)
		}
	}
	return nil
}

// DeleteOlderThan deletes searches recorded before the cutoff.
func (r *InMemoryRepository) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for id, s := range r.searches {
		if s.SearchedAt.Before(cutoff) {
			delete(r.searches, id)
			removed++
		}
	}
	return removed, nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
