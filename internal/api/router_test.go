package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hantaray/movie-api/internal/app/service"
	"github.com/hantaray/movie-api/internal/common"
	"github.com/hantaray/movie-api/internal/common/security"
	"github.com/hantaray/movie-api/internal/domain/model"
	"github.com/hantaray/movie-api/internal/domain/repository"
	"github.com/hantaray/movie-api/internal/platform/config"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- in-memory fakes ---

type memUserRepo struct {
	users map[string]*model.User
}

var _ repository.UserRepository = (*memUserRepo)(nil)

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	if _, exists := r.users[user.Username]; exists {
		return fmt.Errorf("user %s already exists: %w", user.Username, common.ErrConflict)
	}
	user.ID = primitive.NewObjectID()
	clone := *user
	r.users[user.Username] = &clone
	return nil
}

func (r *memUserRepo) FindAll(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *memUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) Update(ctx context.Context, username string, update repository.UserUpdate) (*model.User, error) {
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
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) Delete(ctx context.Context, username string) error {
	if _, ok := r.users[username]; !ok {
		return common.ErrNotFound
	}
	delete(r.users, username)
	return nil
}

func (r *memUserRepo) PushFavorite(ctx context.Context, username string, movieID primitive.ObjectID) (*model.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	u.FavoriteMovies = append(u.FavoriteMovies, movieID)
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) PullFavorite(ctx context.Context, username string, movieID primitive.ObjectID) (*model.User, error) {
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

type memMovieRepo struct {
	movies []model.Movie
}

var _ repository.MovieRepository = (*memMovieRepo)(nil)

func (r *memMovieRepo) FindAll(ctx context.Context) ([]model.Movie, error) {
	return r.movies, nil
}

func (r *memMovieRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Movie, error) {
	for i := range r.movies {
		if r.movies[i].ID == id {
			return &r.movies[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memMovieRepo) FindByTitle(ctx context.Context, title string) (*model.Movie, error) {
	for i := range r.movies {
		if r.movies[i].Title == title {
			return &r.movies[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memMovieRepo) FindByGenreName(ctx context.Context, name string) (*model.Movie, error) {
	for i := range r.movies {
		for _, g := range r.movies[i].Genres {
			if g.Name == name {
				return &r.movies[i], nil
			}
		}
	}
	return nil, common.ErrNotFound
}

func (r *memMovieRepo) FindByDirectorName(ctx context.Context, name string) (*model.Movie, error) {
	for i := range r.movies {
		if r.movies[i].Director.Name == name {
			return &r.movies[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memMovieRepo) InsertMany(ctx context.Context, movies []model.Movie) error {
	r.movies = append(r.movies, movies...)
	return nil
}

// --- test server setup ---

func newTestServer(t *testing.T, movies ...model.Movie) http.Handler {
	t.Helper()

	config.AppConfig = &config.Config{
		APIPort:        "8080",
		JWTKey:         []byte("test-secret"),
		JWTExp:         7 * 24 * time.Hour,
		AllowedOrigins: []string{"http://localhost:1234"},
	}
	security.InitJWT()

	userRepo := &memUserRepo{users: make(map[string]*model.User)}
	movieRepo := &memMovieRepo{movies: movies}

	authService := service.NewAuthService(userRepo, nil)
	userService := service.NewUserService(userRepo, movieRepo)
	movieService := service.NewMovieService(movieRepo)

	return NewRouter(authService, userService, movieService)
}

func doJSON(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, h http.Handler, username, password string) string {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/users", "",
		fmt.Sprintf(`{"username":%q,"password":%q,"email":"%s@example.com"}`, username, password, username))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/login", "",
		fmt.Sprintf(`{"username":%q,"password":%q}`, username, password))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func testMovie(title, genre, director string) model.Movie {
	return model.Movie{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: "A test movie.",
		Genres:      []model.Genre{{Name: genre, Description: genre + " films."}},
		Director:    model.Director{Name: director, Bio: "A director."},
	}
}

// --- tests ---

func TestWelcomeRoute(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Welcome to the Movie-API!", rec.Body.String())
}

func TestRegister_ReturnsHashedPassword(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/users", "",
		`{"username":"abcde","password":"pw","email":"a@b.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var user model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	require.Equal(t, "abcde", user.Username)
	require.NotEqual(t, "pw", user.Password)
	require.True(t, security.CheckPasswordHash("pw", user.Password))
	require.Empty(t, user.FavoriteMovies)
}

func TestRegister_ShortUsernameRejected(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/users", "",
		`{"username":"ab","password":"pw","email":"a@b.com"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// No record was created: logging in with those credentials fails
	rec = doJSON(t, h, http.MethodPost, "/login", "", `{"username":"ab","password":"pw"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegister_DuplicateUsernameConflict(t *testing.T) {
	h := newTestServer(t)

	body := `{"username":"abcde","password":"pw","email":"a@b.com"}`
	rec := doJSON(t, h, http.MethodPost, "/users", "", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/users", "", body)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin_WrongPasswordHasNoToken(t *testing.T) {
	h := newTestServer(t)
	registerAndLogin(t, h, "abcde", "pw")

	rec := doJSON(t, h, http.MethodPost, "/login", "", `{"username":"abcde","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotContains(t, rec.Body.String(), "token")
}

func TestMovies_RequireBearerToken(t *testing.T) {
	h := newTestServer(t, testMovie("Inception", "Science Fiction", "Christopher Nolan"))

	rec := doJSON(t, h, http.MethodGet, "/movies", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotContains(t, rec.Body.String(), "Inception")
}

func TestMovies_ListWithToken(t *testing.T) {
	h := newTestServer(t, testMovie("Inception", "Science Fiction", "Christopher Nolan"))
	token := registerAndLogin(t, h, "abcde", "pw")

	rec := doJSON(t, h, http.MethodGet, "/movies", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var movies []model.Movie
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &movies))
	require.Len(t, movies, 1)
	require.Equal(t, "Inception", movies[0].Title)
}

func TestMovies_GarbageTokenRejected(t *testing.T) {
	h := newTestServer(t, testMovie("Inception", "Science Fiction", "Christopher Nolan"))

	rec := doJSON(t, h, http.MethodGet, "/movies", "not-a-real-token", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotContains(t, rec.Body.String(), "Inception")
}

func TestGenreLookup_NoMatchIs404(t *testing.T) {
	h := newTestServer(t, testMovie("Inception", "Science Fiction", "Christopher Nolan"))
	token := registerAndLogin(t, h, "abcde", "pw")

	rec := doJSON(t, h, http.MethodGet, "/movies/genres/Science%20Fiction", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/movies/genres/Western", token, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDirectorLookup(t *testing.T) {
	h := newTestServer(t, testMovie("Inception", "Science Fiction", "Christopher Nolan"))
	token := registerAndLogin(t, h, "abcde", "pw")

	rec := doJSON(t, h, http.MethodGet, "/movies/directors/Christopher%20Nolan", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var director model.Director
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &director))
	require.Equal(t, "Christopher Nolan", director.Name)

	rec = doJSON(t, h, http.MethodGet, "/movies/directors/John%20Ford", token, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMutation_OtherAccountForbidden(t *testing.T) {
	h := newTestServer(t)
	token := registerAndLogin(t, h, "abcde", "pw")

	rec := doJSON(t, h, http.MethodPost, "/users", "",
		`{"username":"fghij","password":"pw","email":"f@b.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodPut, "/users/fghij", token,
		`{"username":"fghij","email":"hacked@b.com"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/users/fghij", token, "")
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestFavoriteRoutes(t *testing.T) {
	movie := testMovie("Inception", "Science Fiction", "Christopher Nolan")
	h := newTestServer(t, movie)
	token := registerAndLogin(t, h, "abcde", "pw")

	rec := doJSON(t, h, http.MethodPost, "/users/abcde/movies/Inception", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var user model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	require.Equal(t, []primitive.ObjectID{movie.ID}, user.FavoriteMovies)

	rec = doJSON(t, h, http.MethodPost, "/users/abcde/movies/Unknown", token, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/users/abcde/movies/Inception", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	require.Empty(t, user.FavoriteMovies)
}

func TestUpdateUser_ProfileOnlyKeepsFavorites(t *testing.T) {
	movie := testMovie("Inception", "Science Fiction", "Christopher Nolan")
	h := newTestServer(t, movie)
	token := registerAndLogin(t, h, "abcde", "pw")

	rec := doJSON(t, h, http.MethodPost, "/users/abcde/movies/Inception", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPut, "/users/abcde", token,
		`{"username":"abcde","email":"new@b.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var user model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	require.Equal(t, "new@b.com", user.Email)
	require.Equal(t, []primitive.ObjectID{movie.ID}, user.FavoriteMovies)
}

func TestDeleteUser(t *testing.T) {
	h := newTestServer(t)
	token := registerAndLogin(t, h, "abcde", "pw")

	rec := doJSON(t, h, http.MethodDelete, "/users/abcde", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "abcde was deleted.", rec.Body.String())
}

func TestCORS_AllowList(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:1234")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "http://localhost:1234", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
