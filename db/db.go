package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection       *mongo.Collection
	TagCollection        *mongo.Collection
	IngredientCollection *mongo.Collection
	RecipeCollection     *mongo.Collection
	FavoriteCollection   *mongo.Collection
	CartCollection       *mongo.Collection
	FollowCollection     *mongo.Collection

	Client *mongo.Client
)

// Connect establishes the MongoDB connection and wires up the collection
// globals used across the feature packages.
func Connect(ctx context.Context, uri string) error {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return err
	}
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return err
	}
	Client = client

	fg := client.Database("foodgram")
	UserCollection = fg.Collection("users")
	TagCollection = fg.Collection("tags")
	IngredientCollection = fg.Collection("ingredients")
	RecipeCollection = fg.Collection("recipes")
	FavoriteCollection = fg.Collection("favorites")
	CartCollection = fg.Collection("cart")
	FollowCollection = fg.Collection("follows")

	return nil
}

// EnsureIndexes creates the unique indexes the membership trackers rely on.
// A racing duplicate insert fails with a duplicate-key error which the
// trackers report as an already-exists condition.
func EnsureIndexes(ctx context.Context) error {
	pair := func(a, b string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: a, Value: 1}, {Key: b, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}

	if _, err := FavoriteCollection.Indexes().CreateOne(ctx, pair("userid", "recipeId")); err != nil {
		return err
	}
	if _, err := CartCollection.Indexes().CreateOne(ctx, pair("userid", "recipeId")); err != nil {
		return err
	}
	if _, err := FollowCollection.Indexes().CreateOne(ctx, pair("userid", "authorid")); err != nil {
		return err
	}

	for _, field := range []string{"email", "username", "userid"} {
		_, err := UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return err
		}
	}

	_, err := TagCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	// prefix search on ingredient names
	_, err = IngredientCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
	})
	return err
}
