package handler

import (
	"net/http"

	"github.com/hantaray/movie-api/internal/api/middleware"
	"github.com/hantaray/movie-api/internal/app/service"
	"github.com/hantaray/movie-api/internal/common"

	"github.com/go-chi/chi/v5"
)

type MovieHandler struct {
	movieService *service.MovieService
}

func NewMovieHandler(movieService *service.MovieService) *MovieHandler {
	return &MovieHandler{movieService: movieService}
}

// RegisterRoutes mounts the read-only catalog routes; every one of them
// requires a valid bearer token.
func (h *MovieHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)

	r.Get("/", h.listMovies)
	r.Get("/genres/{genreName}", h.getGenres)
	r.Get("/directors/{directorName}", h.getDirector)
	r.Get("/{movieId}", h.getMovie)
}

func (h *MovieHandler) listMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.movieService.List(r.Context())
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, movies)
}

func (h *MovieHandler) getMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := h.movieService.Get(r.Context(), chi.URLParam(r, "movieId"))
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, movie)
}

func (h *MovieHandler) getGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.movieService.GetGenres(r.Context(), chi.URLParam(r, "genreName"))
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, genres)
}

func (h *MovieHandler) getDirector(w http.ResponseWriter, r *http.Request) {
	director, err := h.movieService.GetDirector(r.Context(), chi.URLParam(r, "directorName"))
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, director)
}
