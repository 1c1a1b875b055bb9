package service

import (
	"context"
	"math/rand"
	"strings"

	"moviepicks/internal/model"
	"moviepicks/internal/repository"
)

// MovieService handles a user's personal movie list
type MovieService struct {
	movieRepo repository.MovieRepository
	randIntn  func(n int) int
}

func NewMovieService(movieRepo repository.MovieRepository) *MovieService {
	return &MovieService{
		movieRepo: movieRepo,
		randIntn:  rand.Intn,
	}
}

// Add validates and creates a movie in the user's list. The repository
// guarantees the insert and the owner's counter update are atomic.
func (s *MovieService) Add(ctx context.Context, userID int64, req *model.AddMovieRequest) (*model.Movie, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, model.ErrTitleRequired
	}

	genres := make([]string, 0, len(req.Genres))
	for _, g := range req.Genres {
		g = strings.TrimSpace(g)
		if g != "" {
			genres = append(genres, g)
		}
	}

	movie := &model.Movie{
		UserID:    userID,
		Title:     title,
		Genres:    genres,
		Plot:      req.Plot,
		PosterURL: req.PosterURL,
	}

	if err := s.movieRepo.Create(ctx, movie); err != nil {
		return nil, err
	}

	return movie, nil
}

// MarkWatched flags the movie as watched. Re-marking a watched movie is a
// no-op success; marking a movie the user doesn't own is ErrMovieNotFound.
func (s *MovieService) MarkWatched(ctx context.Context, userID, movieID int64) error {
	return s.movieRepo.MarkWatched(ctx, movieID, userID)
}

// List returns the user's movies in the order they were added.
func (s *MovieService) List(ctx context.Context, userID int64) ([]model.Movie, error) {
	return s.movieRepo.ListByUser(ctx, userID)
}

// PickUnwatched selects one of the user's unwatched movies uniformly at
// random. An empty candidate set is ErrNoUnwatchedMovies, never a zero pick.
func (s *MovieService) PickUnwatched(ctx context.Context, userID int64) (*model.Movie, error) {
	unwatched, err := s.movieRepo.ListUnwatchedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(unwatched) == 0 {
		return nil, model.ErrNoUnwatchedMovies
	}

	pick := unwatched[s.randIntn(len(unwatched))]
	return &pick, nil
}
