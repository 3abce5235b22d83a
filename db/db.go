package db

import (
	"context"
	"log"
	"os"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	OrdersCollection       *mongo.Collection
	SlotCountersCollection *mongo.Collection
	CommentsCollection     *mongo.Collection
	ThoughtLikesCollection *mongo.Collection
	BlogPostsCollection    *mongo.Collection
	DevblogCollection      *mongo.Collection
	Client                 *mongo.Client
)

// Initialize MongoDB connection
func init() {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := os.Getenv("MONGODB_DB")
	if database == "" {
		database = "lnzhdb"
	}

	OrdersCollection = Client.Database(database).Collection("orders")
	SlotCountersCollection = Client.Database(database).Collection("orderSlots")
	CommentsCollection = Client.Database(database).Collection("coffeeComments")
	ThoughtLikesCollection = Client.Database(database).Collection("thoughts")
	BlogPostsCollection = Client.Database(database).Collection("blogPosts")
	DevblogCollection = Client.Database(database).Collection("devblog")
}
