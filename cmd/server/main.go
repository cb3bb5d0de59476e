package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hantaray/movie-api/internal/api"
	"github.com/hantaray/movie-api/internal/app/service"
	"github.com/hantaray/movie-api/internal/common/security"
	"github.com/hantaray/movie-api/internal/domain/repository"
	"github.com/hantaray/movie-api/internal/platform/config"
	"github.com/hantaray/movie-api/internal/platform/database"
	"github.com/hantaray/movie-api/internal/platform/limiter"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// 3. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 4. Initialize Database
	database.Connect()
	defer database.Close()

	// 5. Initialize login limiter (optional, Redis-backed)
	loginLimiter := limiter.Connect()
	defer loginLimiter.Close()

	// 6. Initialize Repositories
	userRepo := repository.NewMongoUserRepository(database.DB)
	movieRepo := repository.NewMongoMovieRepository(database.DB)

	// 7. Initialize Services
	authService := service.NewAuthService(userRepo, loginLimiter)
	userService := service.NewUserService(userRepo, movieRepo)
	movieService := service.NewMovieService(movieRepo)

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(authService, userService, movieService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort, // all interfaces
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Listening on Port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
