package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a catalog account. The password field always carries a bcrypt
// hash, never plaintext; clients receive the hash back on registration,
// which is the published API contract.
type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	Username       string               `bson:"username" json:"username"`
	Password       string               `bson:"password" json:"password"`
	Email          string               `bson:"email" json:"email"`
	Birthday       *time.Time           `bson:"birthday,omitempty" json:"birthday,omitempty"`
	FavoriteMovies []primitive.ObjectID `bson:"favoriteMovies" json:"favoriteMovies"`
}
