package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hantaray/movie-api/internal/common"
	"github.com/hantaray/movie-api/internal/domain/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MovieRepository interface {
	FindAll(ctx context.Context) ([]model.Movie, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Movie, error)
	FindByTitle(ctx context.Context, title string) (*model.Movie, error)
	FindByGenreName(ctx context.Context, name string) (*model.Movie, error)
	FindByDirectorName(ctx context.Context, name string) (*model.Movie, error)
	InsertMany(ctx context.Context, movies []model.Movie) error
}

type mongoMovieRepository struct {
	collection *mongo.Collection
}

func NewMongoMovieRepository(db *mongo.Database) MovieRepository {
	return &mongoMovieRepository{collection: db.Collection("movies")}
}

func (r *mongoMovieRepository) FindAll(ctx context.Context) ([]model.Movie, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("mongoMovieRepository.FindAll: %w", err)
	}
	movies := []model.Movie{}
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, fmt.Errorf("mongoMovieRepository.FindAll: %w", err)
	}
	return movies, nil
}

func (r *mongoMovieRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Movie, error) {
	return r.findOne(ctx, bson.M{"_id": id}, "FindByID")
}

func (r *mongoMovieRepository) FindByTitle(ctx context.Context, title string) (*model.Movie, error) {
	return r.findOne(ctx, bson.M{"title": title}, "FindByTitle")
}

// FindByGenreName returns the first movie carrying a genre with the given
// name, matching the catalog's lookup convention.
func (r *mongoMovieRepository) FindByGenreName(ctx context.Context, name string) (*model.Movie, error) {
	return r.findOne(ctx, bson.M{"genres.name": name}, "FindByGenreName")
}

func (r *mongoMovieRepository) FindByDirectorName(ctx context.Context, name string) (*model.Movie, error) {
	return r.findOne(ctx, bson.M{"director.name": name}, "FindByDirectorName")
}

func (r *mongoMovieRepository) InsertMany(ctx context.Context, movies []model.Movie) error {
	docs := make([]interface{}, len(movies))
	for i := range movies {
		docs[i] = movies[i]
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("mongoMovieRepository.InsertMany: %w", err)
	}
	return nil
}

func (r *mongoMovieRepository) findOne(ctx context.Context, filter bson.M, method string) (*model.Movie, error) {
	movie := &model.Movie{}
	err := r.collection.FindOne(ctx, filter).Decode(movie)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoMovieRepository.%s: %w", method, err)
	}
	return movie, nil
}
