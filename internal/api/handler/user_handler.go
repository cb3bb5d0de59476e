package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hantaray/movie-api/internal/api/middleware"
	"github.com/hantaray/movie-api/internal/app/service"
	"github.com/hantaray/movie-api/internal/common"
	"github.com/hantaray/movie-api/internal/common/validation"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService *service.UserService
	validator   *validation.Validator
}

func NewUserHandler(userService *service.UserService, validator *validation.Validator) *UserHandler {
	return &UserHandler{userService: userService, validator: validator}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.register) // public registration

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.Authenticator)

		protected.Get("/", h.listUsers)
		protected.Get("/{username}", h.getUser)

		// Mutations are restricted to the account named in the path
		protected.With(middleware.RequireSelf).Put("/{username}", h.updateUser)
		protected.With(middleware.RequireSelf).Delete("/{username}", h.deleteUser)
		protected.With(middleware.RequireSelf).Post("/{username}/movies/{movietitle}", h.addFavorite)
		protected.With(middleware.RequireSelf).Delete("/{username}/movies/{movietitle}", h.removeFavorite)
	})
}

func (h *UserHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.validator.Validate(req); err != nil {
		common.RespondWithValidationErrors(w, validation.Messages(err))
		return
	}

	user, err := h.userService.Register(r.Context(), req)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}

func (h *UserHandler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.Get(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) updateUser(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.validator.Validate(req); err != nil {
		common.RespondWithValidationErrors(w, validation.Messages(err))
		return
	}

	user, err := h.userService.Update(r.Context(), chi.URLParam(r, "username"), req)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if err := h.userService.Delete(r.Context(), username); err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithText(w, http.StatusOK, username+" was deleted.")
}

func (h *UserHandler) addFavorite(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.AddFavorite(r.Context(), chi.URLParam(r, "username"), chi.URLParam(r, "movietitle"))
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.RemoveFavorite(r.Context(), chi.URLParam(r, "username"), chi.URLParam(r, "movietitle"))
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}
