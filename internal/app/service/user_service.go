package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hantaray/movie-api/internal/common"
	"github.com/hantaray/movie-api/internal/common/security"
	"github.com/hantaray/movie-api/internal/domain/model"
	"github.com/hantaray/movie-api/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService struct {
	userRepo  repository.UserRepository
	movieRepo repository.MovieRepository
}

func NewUserService(userRepo repository.UserRepository, movieRepo repository.MovieRepository) *UserService {
	return &UserService{userRepo: userRepo, movieRepo: movieRepo}
}

type RegisterRequest struct {
	Username string     `json:"username" validate:"required,alphanum,min=3"`
	Password string     `json:"password" validate:"required"`
	Email    string     `json:"email" validate:"required,email"`
	Birthday *time.Time `json:"birthday,omitempty"`
}

// UpdateUserRequest replaces the stored record. An absent password means
// the stored hash stays as is; a submitted one is always re-hashed.
type UpdateUserRequest struct {
	Username       string               `json:"username" validate:"required,alphanum,min=3"`
	Password       string               `json:"password,omitempty"`
	Email          string               `json:"email" validate:"required,email"`
	Birthday       *time.Time           `json:"birthday,omitempty"`
	FavoriteMovies []primitive.ObjectID `json:"favoriteMovies,omitempty"`
}

func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:       req.Username,
		Password:       hashedPassword,
		Email:          req.Email,
		Birthday:       req.Birthday,
		FavoriteMovies: []primitive.ObjectID{},
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrConflict on a taken username
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, username string, req UpdateUserRequest) (*model.User, error) {
	// A request without a favoriteMovies field leaves the stored list
	// alone; an explicit empty array clears it.
	update := repository.UserUpdate{
		Username:       req.Username,
		Email:          req.Email,
		Birthday:       req.Birthday,
		FavoriteMovies: req.FavoriteMovies,
	}
	if req.Password != "" {
		hashedPassword, err := security.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		update.Password = hashedPassword
	}

	user, err := s.userRepo.Update(ctx, username, update)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, username string) error {
	if err := s.userRepo.Delete(ctx, username); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// AddFavorite pushes a movie reference onto the user's list. Duplicates
// are permitted; the list keeps insertion order.
func (s *UserService) AddFavorite(ctx context.Context, username, movieTitle string) (*model.User, error) {
	movie, err := s.movieRepo.FindByTitle(ctx, movieTitle)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("movie %s: %w", movieTitle, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}

	user, err := s.userRepo.PushFavorite(ctx, username, movie.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("user %s: %w", username, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}
	return user, nil
}

// RemoveFavorite pulls every matching reference; removing a movie that
// was never added leaves the list unchanged.
func (s *UserService) RemoveFavorite(ctx context.Context, username, movieTitle string) (*model.User, error) {
	movie, err := s.movieRepo.FindByTitle(ctx, movieTitle)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("movie %s: %w", movieTitle, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}

	user, err := s.userRepo.PullFavorite(ctx, username, movie.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("user %s: %w", username, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to remove favorite: %w", err)
	}
	return user, nil
}
