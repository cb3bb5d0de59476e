package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hantaray/movie-api/internal/common"
	"github.com/hantaray/movie-api/internal/domain/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserUpdate carries the replacement fields for a full user update. An
// empty Password means "leave the stored hash unchanged"; a nil
// FavoriteMovies likewise leaves the stored list untouched.
type UserUpdate struct {
	Username       string
	Password       string
	Email          string
	Birthday       *time.Time
	FavoriteMovies []primitive.ObjectID
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindAll(ctx context.Context) ([]model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, username string, update UserUpdate) (*model.User, error)
	Delete(ctx context.Context, username string) error
	PushFavorite(ctx context.Context, username string, movieID primitive.ObjectID) (*model.User, error)
	PullFavorite(ctx context.Context, username string, movieID primitive.ObjectID) (*model.User, error)
}

type mongoUserRepository struct {
	collection *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) UserRepository {
	collection := db.Collection("users")

	// The unique index backs the duplicate-key check in Create; without
	// it concurrent registrations could double-insert a username.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Fatalf("Error creating unique index on users.username: %v", err)
	}

	return &mongoUserRepository{collection: collection}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *model.User) error {
	// Pre-check keeps the common case friendly; the unique index on
	// username is the actual guarantee under concurrent registration.
	err := r.collection.FindOne(ctx, bson.M{"username": user.Username}).Err()
	if err == nil {
		return fmt.Errorf("user %s already exists: %w", user.Username, common.ErrConflict)
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("mongoUserRepository.Create: %w", err)
	}

	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("user %s already exists: %w", user.Username, common.ErrConflict)
		}
		return fmt.Errorf("mongoUserRepository.Create: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (r *mongoUserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("mongoUserRepository.FindAll: %w", err)
	}
	users := []model.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("mongoUserRepository.FindAll: %w", err)
	}
	return users, nil
}

func (r *mongoUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoUserRepository.FindByUsername: %w", err)
	}
	return user, nil
}

func (r *mongoUserRepository) Update(ctx context.Context, username string, update UserUpdate) (*model.User, error) {
	set := bson.M{
		"username": update.Username,
		"email":    update.Email,
		"birthday": update.Birthday,
	}
	if update.Password != "" {
		set["password"] = update.Password
	}
	if update.FavoriteMovies != nil {
		set["favoriteMovies"] = update.FavoriteMovies
	}

	user := &model.User{}
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"username": username},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoUserRepository.Update: %w", err)
	}
	return user, nil
}

func (r *mongoUserRepository) Delete(ctx context.Context, username string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"username": username})
	if err != nil {
		return fmt.Errorf("mongoUserRepository.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *mongoUserRepository) PushFavorite(ctx context.Context, username string, movieID primitive.ObjectID) (*model.User, error) {
	return r.updateFavorites(ctx, username, bson.M{"$push": bson.M{"favoriteMovies": movieID}})
}

func (r *mongoUserRepository) PullFavorite(ctx context.Context, username string, movieID primitive.ObjectID) (*model.User, error) {
	return r.updateFavorites(ctx, username, bson.M{"$pull": bson.M{"favoriteMovies": movieID}})
}

func (r *mongoUserRepository) updateFavorites(ctx context.Context, username string, update bson.M) (*model.User, error) {
	user := &model.User{}
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"username": username},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoUserRepository.updateFavorites: %w", err)
	}
	return user, nil
}
