package favorites

import (
	"context"
	"errors"
	"time"

	"foodgram/db"
	"foodgram/models"
	"foodgram/validation"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MembershipStore is the persistence surface shared by the favorite and
// shopping-cart trackers. Two mongo-backed instances exist, one per
// collection; tests use an in-memory fake.
type MembershipStore interface {
	RecipeByID(ctx context.Context, id primitive.ObjectID) (*models.RecipeShort, error)
	Exists(ctx context.Context, userID string, recipeID primitive.ObjectID) (bool, error)
	Insert(ctx context.Context, m models.Membership) error
	Delete(ctx context.Context, userID string, recipeID primitive.ObjectID) error
}

// Add puts (userID, recipeID) into the membership set and returns the short
// recipe projection. Unknown recipes and repeat adds both fail with
// client-error conditions.
func Add(ctx context.Context, store MembershipStore, userID string, recipeID primitive.ObjectID) (*models.RecipeShort, error) {
	recipe, err := store.RecipeByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	exists, err := store.Exists(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, validation.NewFieldError("error", "Рецепт уже добавлен", validation.ErrAlreadyExists)
	}
	err = store.Insert(ctx, models.Membership{
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// Remove deletes (userID, recipeID) from the membership set. The unknown-
// recipe condition here is a not-found, unlike the add path.
func Remove(ctx context.Context, store MembershipStore, userID string, recipeID primitive.ObjectID) error {
	if _, err := store.RecipeByID(ctx, recipeID); err != nil {
		return err
	}
	exists, err := store.Exists(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !exists {
		return validation.NewFieldError("error", "Рецепт не удален", validation.ErrNotAMember)
	}
	return store.Delete(ctx, userID, recipeID)
}

type mongoMembershipStore struct {
	coll func() *mongo.Collection
}

var (
	favoriteStore = mongoMembershipStore{coll: func() *mongo.Collection { return db.FavoriteCollection }}
	cartStore     = mongoMembershipStore{coll: func() *mongo.Collection { return db.CartCollection }}
)

func (s mongoMembershipStore) RecipeByID(ctx context.Context, id primitive.ObjectID) (*models.RecipeShort, error) {
	var recipe models.RecipeShort
	err := db.RecipeCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, validation.NewFieldError("error", "Рецепта не существует", validation.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s mongoMembershipStore) Exists(ctx context.Context, userID string, recipeID primitive.ObjectID) (bool, error) {
	err := s.coll().FindOne(ctx, bson.M{"userid": userID, "recipeId": recipeID}).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}

func (s mongoMembershipStore) Insert(ctx context.Context, m models.Membership) error {
	_, err := s.coll().InsertOne(ctx, m)
	if mongo.IsDuplicateKeyError(err) {
		// racing duplicate resolved by the unique index
		return validation.NewFieldError("error", "Рецепт уже добавлен", validation.ErrAlreadyExists)
	}
	return err
}

func (s mongoMembershipStore) Delete(ctx context.Context, userID string, recipeID primitive.ObjectID) error {
	_, err := s.coll().DeleteOne(ctx, bson.M{"userid": userID, "recipeId": recipeID})
	return err
}

// IsFavorited reports favorite membership; anonymous requesters never
// have one.
func IsFavorited(ctx context.Context, userID string, recipeID primitive.ObjectID) bool {
	if userID == "" {
		return false
	}
	ok, err := favoriteStore.Exists(ctx, userID, recipeID)
	return err == nil && ok
}

func IsInCart(ctx context.Context, userID string, recipeID primitive.ObjectID) bool {
	if userID == "" {
		return false
	}
	ok, err := cartStore.Exists(ctx, userID, recipeID)
	return err == nil && ok
}

func membershipRecipeIDs(ctx context.Context, coll *mongo.Collection, userID string) ([]primitive.ObjectID, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := coll.Find(ctx, bson.M{"userid": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []models.Membership
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.RecipeID)
	}
	return ids, nil
}

// FavoriteRecipeIDs lists the requester's favorited recipes in add order.
func FavoriteRecipeIDs(ctx context.Context, userID string) ([]primitive.ObjectID, error) {
	return membershipRecipeIDs(ctx, db.FavoriteCollection, userID)
}

// CartRecipeIDs lists the requester's cart recipes in add order. The
// shopping-list aggregator walks these.
func CartRecipeIDs(ctx context.Context, userID string) ([]primitive.ObjectID, error) {
	return membershipRecipeIDs(ctx, db.CartCollection, userID)
}

// DeleteForRecipe cascades a recipe delete into both membership sets.
func DeleteForRecipe(ctx context.Context, recipeID primitive.ObjectID) {
	db.FavoriteCollection.DeleteMany(ctx, bson.M{"recipeId": recipeID})
	db.CartCollection.DeleteMany(ctx, bson.M{"recipeId": recipeID})
}
