package search

import (
	"context"
	"time"
)

// ListOptions contains options for listing searches.
type ListOptions struct {
	Limit  int
	Cursor string
}

// ListResult contains the results of listing searches.
type ListResult struct {
	Items      []*Search
	NextCursor string
}

// Repository defines the interface for search history persistence.
type Repository interface {
	// Create records a new search.
	Create(ctx context.Context, search *Search) error

	// GetByUserAndID retrieves a search by user ID and search ID.
	// Returns ErrSearchNotFound if the search doesn't exist or doesn't
	// belong to the user.
	GetByUserAndID(ctx context.Context, userID, searchID string) (*Search, error)

	// List retrieves searches for a user, newest first, with pagination.
	List(ctx context.Context, userID string, opts ListOptions) (*ListResult, error)

	// Delete deletes a search by ID.
	Delete(ctx context.Context, id string) error

	// DeleteAllForUser deletes all searches for a user.
	DeleteAllForUser(ctx context.Context, userID string) error

	// DeleteOlderThan deletes searches recorded before the cutoff and
	// returns how many were removed. Used by the maintenance worker.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
