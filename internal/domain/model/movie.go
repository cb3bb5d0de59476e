package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Genre struct {
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description" json:"description"`
}

type Director struct {
	Name string `bson:"name" json:"name"`
	Bio  string `bson:"bio" json:"bio"`
}

// Movie is read-only through the API; the catalog is maintained out of
// band (see cmd/seed).
type Movie struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Genres      []Genre            `bson:"genres" json:"genres"`
	Director    Director           `bson:"director" json:"director"`
	ImagePath   string             `bson:"imagePath" json:"imagePath"`
	Featured    bool               `bson:"featured" json:"featured"`
}
