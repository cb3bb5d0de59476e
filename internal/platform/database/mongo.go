package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hantaray/movie-api/internal/platform/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client *mongo.Client
	DB     *mongo.Database
)

func Connect() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	Client, err = mongo.Connect(ctx, options.Client().ApplyURI(config.AppConfig.MongoURI))
	if err != nil {
		log.Fatalf("Error opening MongoDB connection: %v", err)
	}

	// Verify connection
	if err = Client.Ping(ctx, nil); err != nil {
		log.Fatalf("Error connecting to MongoDB: %v", err)
	}

	DB = Client.Database(config.AppConfig.MongoDBName)
	fmt.Println("Successfully connected to MongoDB!")
}

func Close() {
	if Client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := Client.Disconnect(ctx); err != nil {
			log.Printf("Error closing MongoDB connection: %v", err)
			return
		}
		fmt.Println("MongoDB connection closed.")
	}
}
