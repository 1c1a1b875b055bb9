package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"moviepicks/internal/model"
)

// movieRepository implements MovieRepository using sqlx
type movieRepository struct {
	db *sqlx.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *sqlx.DB) MovieRepository {
	return &movieRepository{db: db}
}

// Create inserts a new movie owned by movie.UserID and bumps the owner's
// movie_count in the same transaction.
func (r *movieRepository) Create(ctx context.Context, m *model.Movie) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO movies (user_id, title, genres, plot, poster_url, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, watched, created_at
	`

	row := tx.QueryRowxContext(ctx, query,
		m.UserID,
		m.Title,
		pq.Array([]string(m.Genres)),
		m.Plot,
		m.PosterURL,
	)

	err = row.Scan(
		&m.ID,
		&m.Watched,
		&m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert movie: %w", err)
	}

	countQuery := `UPDATE users SET movie_count = movie_count + 1, updated_at = NOW() WHERE id = $1`
	if _, err := tx.ExecContext(ctx, countQuery, m.UserID); err != nil {
		return fmt.Errorf("failed to increment movie count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// MarkWatched sets watched = TRUE on the movie owned by userID. Re-marking an
// already-watched movie matches a row and succeeds, which makes the operation
// idempotent; only a missing or foreign movie is an error.
func (r *movieRepository) MarkWatched(ctx context.Context, movieID, userID int64) error {
	query := `UPDATE movies SET watched = TRUE WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, movieID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark movie watched: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrMovieNotFound
	}

	return nil
}

// ListByUser returns the user's movies in insertion order.
func (r *movieRepository) ListByUser(ctx context.Context, userID int64) ([]model.Movie, error) {
	query := `
		SELECT id, user_id, title, genres, plot, poster_url, watched, created_at
		FROM movies
		WHERE user_id = $1
		ORDER BY id
	`

	var movies []model.Movie
	err := r.db.SelectContext(ctx, &movies, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	return movies, nil
}

// ListUnwatchedByUser returns the user's unwatched movies in insertion order.
func (r *movieRepository) ListUnwatchedByUser(ctx context.Context, userID int64) ([]model.Movie, error) {
	query := `
		SELECT id, user_id, title, genres, plot, poster_url, watched, created_at
		FROM movies
		WHERE user_id = $1 AND watched = FALSE
		ORDER BY id
	`

	var movies []model.Movie
	err := r.db.SelectContext(ctx, &movies, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unwatched movies: %w", err)
	}

	return movies, nil
}
