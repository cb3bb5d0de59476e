package api

import (
	"net/http"
	"time"

	"github.com/hantaray/movie-api/internal/api/handler"
	"github.com/hantaray/movie-api/internal/app/service"
	"github.com/hantaray/movie-api/internal/common/security"
	"github.com/hantaray/movie-api/internal/common/validation"
	"github.com/hantaray/movie-api/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	userService *service.UserService,
	movieService *service.MovieService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// CORS: exact-match allow-list; requests without an Origin header
	// are not CORS requests and always pass.
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			for _, allowed := range config.AppConfig.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// JWT Auth Middleware Setup
	// It will search for a token in "Authorization: Bearer T".
	r.Use(jwtauth.Verifier(security.TokenAuth)) // Verifies token, puts claims in context

	// Public welcome and documentation pages
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Welcome to the Movie-API!"))
	})
	r.Get("/documentation", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "public/documentation.html")
	})

	validator := validation.New()

	// Login route (public)
	authHandler := handler.NewAuthHandler(authService)
	r.Group(func(public chi.Router) {
		authHandler.RegisterRoutes(public)
	})

	// User routes (registration public, the rest authenticated)
	userHandler := handler.NewUserHandler(userService, validator)
	r.Route("/users", userHandler.RegisterRoutes)

	// Movie routes (authenticated, read-only)
	movieHandler := handler.NewMovieHandler(movieService)
	r.Route("/movies", movieHandler.RegisterRoutes)

	return r
}
