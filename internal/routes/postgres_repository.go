package routes

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL route repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// GetByUserAndID retrieves a route by user ID and route ID.
func (r *PostgresRepository) GetByUserAndID(ctx context.Context, userID, routeID string) (*SavedRoute, error) {
	query := `
		SELECT id, user_id, label, pickup, destination, notes, created_at, updated_at
		FROM saved_routes
		WHERE id = $1 AND user_id = $2
	`

	var route SavedRoute
	err := r.pool.QueryRow(ctx, query, routeID, userID).Scan(
		&route.ID,
		&route.UserID,
		&route.Label,
		&route.Pickup,
		&route.Destination,
		&route.Notes,
		&route.CreatedAt,
		&route.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}

	return &route, nil
}

// List retrieves all saved routes for a user with pagination.
func (r *PostgresRepository) List(ctx context.Context, userID string, opts ListOptions) (*ListResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	// Fetch one extra to determine if there are more results
	fetchLimit := limit + 1

	query := `
		SELECT id, user_id, label, pickup, destination, notes, created_at, updated_at
		FROM saved_routes
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, fetchLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []*SavedRoute
	for rows.Next() {
		var route SavedRoute
		err := rows.Scan(
			&route.ID,
			&route.UserID,
			&route.Label,
			&route.Pickup,
			&route.Destination,
			&route.Notes,
			&route.CreatedAt,
			&route.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		routes = append(routes, &route)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := &ListResult{
		Items: routes,
	}

	// If we got more results than the limit, there are more pages
	if len(routes) > limit {
		result.Items = routes[:limit]
		result.NextCursor = routes[limit-1].ID
	}

	return result, nil
}

// Create creates a new saved route.
func (r *PostgresRepository) Create(ctx context.Context, route *SavedRoute) error {
	query := `
		INSERT INTO saved_routes (id, user_id, label, pickup, destination, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		route.ID,
		route.UserID,
		route.Label,
		route.Pickup,
		route.Destination,
		route.Notes,
		route.CreatedAt,
		route.UpdatedAt,
	)
	return err
}

// Update updates an existing saved route.
func (r *PostgresRepository) Update(ctx context.Context, route *SavedRoute) error {
	query := `
		UPDATE saved_routes SET
			label = $2,
			pickup = $3,
			destination = $4,
			notes = $5,
			updated_at = $6
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		route.ID,
		route.Label,
		route.Pickup,
		route.Destination,
		route.Notes,
		route.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrRouteNotFound
	}

	return nil
}

// Delete deletes a saved route by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM saved_routes WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
