package repository

import (
	"context"

	"moviepicks/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

type MovieRepository interface {
	// Create inserts a movie and attaches it to its owner. The insert and
	// the owner's movie_count bump commit or roll back together, so a
	// failure can never leave an orphaned movie behind.
	Create(ctx context.Context, movie *model.Movie) error
	MarkWatched(ctx context.Context, movieID, userID int64) error
	ListByUser(ctx context.Context, userID int64) ([]model.Movie, error)
	ListUnwatchedByUser(ctx context.Context, userID int64) ([]model.Movie, error)
}
