package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/hantaray/movie-api/internal/common"
	"github.com/hantaray/movie-api/internal/domain/model"
	"github.com/hantaray/movie-api/internal/domain/repository"
	"github.com/hantaray/movie-api/internal/platform/config"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- in-memory fakes ---

type fakeUserRepo struct {
	users map[string]*model.User
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	if _, exists := r.users[user.Username]; exists {
		return fmt.Errorf("user %s already exists: %w", user.Username, common.ErrConflict)
	}
	user.ID = primitive.NewObjectID()
	clone := *user
	r.users[user.Username] = &clone
	return nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, username string, update repository.UserUpdate) (*model.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	if update.Password != "" {
		u.Password = update.Password
	}
	if update.FavoriteMovies != nil {
		u.FavoriteMovies = update.FavoriteMovies
	}
	u.Username = update.Username
	u.Email = update.Email
	u.Birthday = update.Birthday
	if username != update.Username {
		delete(r.users, username)
		r.users[update.Username] = u
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, username string) error {
	if _, ok := r.users[username]; !ok {
		return common.ErrNotFound
	}
	delete(r.users, username)
	return nil
}

func (r *fakeUserRepo) PushFavorite(ctx context.Context, username string, movieID primitive.ObjectID) (*model.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	u.FavoriteMovies = append(u.FavoriteMovies, movieID)
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) PullFavorite(ctx context.Context, username string, movieID primitive.ObjectID) (*model.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	kept := []primitive.ObjectID{}
	for _, id := range u.FavoriteMovies {
		if id != movieID {
			kept = append(kept, id)
		}
	}
	u.FavoriteMovies = kept
	clone := *u
	return &clone, nil
}

type fakeMovieRepo struct {
	movies []model.Movie
}

var _ repository.MovieRepository = (*fakeMovieRepo)(nil)

func (r *fakeMovieRepo) FindAll(ctx context.Context) ([]model.Movie, error) {
	return r.movies, nil
}

func (r *fakeMovieRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Movie, error) {
	for i := range r.movies {
		if r.movies[i].ID == id {
			return &r.movies[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeMovieRepo) FindByTitle(ctx context.Context, title string) (*model.Movie, error) {
	for i := range r.movies {
		if r.movies[i].Title == title {
			return &r.movies[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeMovieRepo) FindByGenreName(ctx context.Context, name string) (*model.Movie, error) {
	for i := range r.movies {
		for _, g := range r.movies[i].Genres {
			if g.Name == name {
				return &r.movies[i], nil
			}
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeMovieRepo) FindByDirectorName(ctx context.Context, name string) (*model.Movie, error) {
	for i := range r.movies {
		if r.movies[i].Director.Name == name {
			return &r.movies[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeMovieRepo) InsertMany(ctx context.Context, movies []model.Movie) error {
	r.movies = append(r.movies, movies...)
	return nil
}

// --- shared setup ---

func setupConfig(t *testing.T) {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey: []byte("test-secret"),
		JWTExp: 7 * 24 * time.Hour,
	}
}

func movieFixture(title string) model.Movie {
	return model.Movie{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: "A test movie.",
		Genres:      []model.Genre{{Name: "Drama", Description: "Drama films."}},
		Director:    model.Director{Name: "Jane Doe", Bio: "A director."},
		ImagePath:   "/images/test.png",
	}
}
