package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hantaray/movie-api/internal/common"
	"github.com/hantaray/movie-api/internal/domain/model"
	"github.com/hantaray/movie-api/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MovieService struct {
	movieRepo repository.MovieRepository
}

func NewMovieService(movieRepo repository.MovieRepository) *MovieService {
	return &MovieService{movieRepo: movieRepo}
}

func (s *MovieService) List(ctx context.Context) ([]model.Movie, error) {
	movies, err := s.movieRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	return movies, nil
}

// Get looks a movie up by its hex document ID; anything that doesn't
// parse as one is treated as a title.
func (s *MovieService) Get(ctx context.Context, idOrTitle string) (*model.Movie, error) {
	var movie *model.Movie
	var err error

	if id, idErr := primitive.ObjectIDFromHex(idOrTitle); idErr == nil {
		movie, err = s.movieRepo.FindByID(ctx, id)
	} else {
		movie, err = s.movieRepo.FindByTitle(ctx, idOrTitle)
	}
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("movie %s: %w", idOrTitle, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return movie, nil
}

// GetGenres returns the genres of the first movie carrying a genre with
// the given name. No matching movie is a not-found, not a crash.
func (s *MovieService) GetGenres(ctx context.Context, genreName string) ([]model.Genre, error) {
	movie, err := s.movieRepo.FindByGenreName(ctx, genreName)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("genre %s: %w", genreName, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find genre: %w", err)
	}
	return movie.Genres, nil
}

func (s *MovieService) GetDirector(ctx context.Context, directorName string) (*model.Director, error) {
	movie, err := s.movieRepo.FindByDirectorName(ctx, directorName)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("director %s: %w", directorName, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find director: %w", err)
	}
	return &movie.Director, nil
}
