// Command seed fills the catalog with demo data: a configurable number
// of generated movies and, optionally, a demo user account. Intended for
// local development and manual API testing; the server never writes to
// the movies collection itself.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/hantaray/movie-api/internal/common/security"
	"github.com/hantaray/movie-api/internal/domain/model"
	"github.com/hantaray/movie-api/internal/domain/repository"
	"github.com/hantaray/movie-api/internal/platform/config"
	"github.com/hantaray/movie-api/internal/platform/database"

	"github.com/gosimple/slug"
	"github.com/jaswdr/faker"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var genrePool = []model.Genre{
	{Name: "Drama", Description: "Character-driven stories with emotional themes."},
	{Name: "Comedy", Description: "Films intended to make the audience laugh."},
	{Name: "Thriller", Description: "Suspenseful films built around tension and uncertainty."},
	{Name: "Science Fiction", Description: "Speculative stories grounded in imagined science or technology."},
	{Name: "Documentary", Description: "Non-fictional films documenting reality."},
	{Name: "Animation", Description: "Films created from drawn, modeled or computer-generated images."},
}

func main() {
	movieCount := flag.Int("movies", 20, "Number of movies to generate")
	demoUser := flag.String("demo-user", "", "Optional demo username to create")
	demoPassword := flag.String("demo-password", "password123", "Password for the demo user")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed for reproducible catalogs")
	flag.Parse()

	config.Load()
	database.Connect()
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	f := faker.NewWithSeed(rand.NewSource(*seed))

	movieRepo := repository.NewMongoMovieRepository(database.DB)
	movies := make([]model.Movie, 0, *movieCount)
	for i := 0; i < *movieCount; i++ {
		movies = append(movies, generateMovie(f))
	}
	if err := movieRepo.InsertMany(ctx, movies); err != nil {
		log.Fatalf("Failed to insert movies: %v", err)
	}
	fmt.Printf("Inserted %d movies.\n", len(movies))

	if *demoUser != "" {
		hashed, err := security.HashPassword(*demoPassword)
		if err != nil {
			log.Fatalf("Failed to hash demo password: %v", err)
		}
		userRepo := repository.NewMongoUserRepository(database.DB)
		user := &model.User{
			Username:       *demoUser,
			Password:       hashed,
			Email:          *demoUser + "@example.com",
			FavoriteMovies: []primitive.ObjectID{},
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create demo user: %v", err)
		}
		fmt.Printf("Created demo user %q.\n", *demoUser)
	}
}

func generateMovie(f faker.Faker) model.Movie {
	title := titleCase(f.Lorem().Word()) + " " + titleCase(f.Lorem().Word())

	genres := []model.Genre{genrePool[f.IntBetween(0, len(genrePool)-1)]}
	if f.Boolean().Bool() {
		second := genrePool[f.IntBetween(0, len(genrePool)-1)]
		if second.Name != genres[0].Name {
			genres = append(genres, second)
		}
	}

	return model.Movie{
		Title:       title,
		Description: f.Lorem().Sentence(12),
		Genres:      genres,
		Director: model.Director{
			Name: f.Person().Name(),
			Bio:  f.Lorem().Sentence(10),
		},
		ImagePath: "/images/" + slug.Make(title) + ".png",
		Featured:  f.Boolean().Bool(),
	}
}

func titleCase(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
