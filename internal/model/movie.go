package model

import (
	"errors"
	"time"

	"github.com/lib/pq"
)

// Movie is a single entry in a user's personal list. Movies are owned by
// exactly one user and are never shared or deleted.
type Movie struct {
	ID        int64          `db:"id" json:"id"`
	UserID    int64          `db:"user_id" json:"-"`
	Title     string         `db:"title" json:"title"`
	Genres    pq.StringArray `db:"genres" json:"genres"`
	Plot      *string        `db:"plot" json:"plot,omitempty"`
	PosterURL *string        `db:"poster_url" json:"poster_url,omitempty"`
	Watched   bool           `db:"watched" json:"watched"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

// AddMovieRequest represents the data needed to add a movie to a list
type AddMovieRequest struct {
	Title     string   `json:"title"`
	Genres    []string `json:"genres"`
	Plot      *string  `json:"plot,omitempty"`
	PosterURL *string  `json:"poster_url,omitempty"`
}

var (
	// ErrMovieNotFound is returned when a movie doesn't exist in the user's list
	ErrMovieNotFound = errors.New("movie not found")

	// ErrTitleRequired is returned when a movie is added without a title
	ErrTitleRequired = errors.New("title is required")

	// ErrNoUnwatchedMovies is returned when a random pick is requested but
	// every movie in the list is already watched (or the list is empty)
	ErrNoUnwatchedMovies = errors.New("no unwatched movies to pick from")

	// ErrLookupFailed is returned when the external metadata service fails
	ErrLookupFailed = errors.New("movie lookup failed")
)
