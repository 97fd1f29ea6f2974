package search

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL search repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create records a new search.
func (r *PostgresRepository) Create(ctx context.Context, s *Search) error {
	query := `
		INSERT INTO ride_searches (
			id, user_id, pickup, destination,
			distance_km, duration_min, distance_source,
			cheapest_price, cheapest_service, option_count,
			searched_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		s.ID,
		s.UserID,
		s.Pickup,
		s.Destination,
		s.DistanceKm,
		s.DurationMin,
		s.DistanceSource,
		s.CheapestPrice,
		s.CheapestService,
		s.OptionCount,
		s.SearchedAt,
	)
	return err
}

// GetByUserAndID retrieves a search by user ID and search ID.
func (r *PostgresRepository) GetByUserAndID(ctx context.Context, userID, searchID string) (*Search, error) {
	query := `
		SELECT
			id, user_id, pickup, destination,
			distance_km, duration_min, distance_source,
			cheapest_price, cheapest_service, option_count,
			searched_at
		FROM ride_searches
		WHERE id = $1 AND user_id = $2
	`

	var s Search
	err := r.pool.QueryRow(ctx, query, searchID, userID).Scan(
		&s.ID,
		&s.UserID,
		&s.Pickup,
		&s.Destination,
		&s.DistanceKm,
		&s.DurationMin,
		&s.DistanceSource,
		&s.CheapestPrice,
		&s.CheapestService,
		&s.OptionCount,
		&s.SearchedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSearchNotFound
		}
		return nil, err
	}

	return &s, nil
}

// List retrieves searches for a user, newest first, with pagination.
func (r *PostgresRepository) List(ctx context.Context, userID string, opts ListOptions) (*ListResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	// Fetch one extra to determine if there are more results
	fetchLimit := limit + 1

	query := `
		SELECT
			id, user_id, pickup, destination,
			distance_km, duration_min, distance_source,
			cheapest_price, cheapest_service, option_count,
			searched_at
		FROM ride_searches
		WHERE user_id = $1
		ORDER BY searched_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, fetchLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var searches []*Search
	for rows.Next() {
		var s Search
		err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.Pickup,
			&s.Destination,
			&s.DistanceKm,
			&s.DurationMin,
			&s.DistanceSource,
			&s.CheapestPrice,
			&s.CheapestService,
			&s.OptionCount,
			&s.SearchedAt,
		)
		if err != nil {
			return nil, err
		}
		searches = append(searches, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := &ListResult{
		Items: searches,
	}

	// If we got more results than the limit, there are more pages
	if len(searches) > limit {
		result.Items = searches[:limit]
		result.NextCursor = searches[limit-1].ID
	}

	return result, nil
}

// Delete deletes a search by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM ride_searches WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

// DeleteAllForUser deletes all searches for a user.
func (r *PostgresRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	query := `DELETE FROM ride_searches WHERE user_id = $1`
	_, err := r.pool.Exec(ctx, query, userID)
	return err
}

// DeleteOlderThan deletes searches recorded before the cutoff.
func (r *PostgresRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM ride_searches WHERE searched_at < $1`
	result, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
