package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecipeIngredient is one line item of a recipe. The ingredient name and
// unit are denormalized at validation time so cart aggregation does not
// need catalog lookups.
type RecipeIngredient struct {
	IngredientID    primitive.ObjectID `bson:"ingredientId"    json:"id"`
	Name            string             `bson:"name"            json:"name"`
	MeasurementUnit string             `bson:"measurementUnit" json:"measurement_unit"`
	Amount          int                `bson:"amount"          json:"amount"`
}

type Recipe struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	AuthorID    string               `bson:"authorid"      json:"-"`
	Name        string               `bson:"name"          json:"name"`
	Text        string               `bson:"text"          json:"text"`
	Image       string               `bson:"image"         json:"image"`
	CookingTime int                  `bson:"cookingTime"   json:"cooking_time"`
	TagIDs      []primitive.ObjectID `bson:"tagIds"        json:"-"`
	Ingredients []RecipeIngredient   `bson:"ingredients"   json:"ingredients"`
	PubDate     time.Time            `bson:"pubDate"       json:"-"`
}

// RecipeShort is the projection returned by favorite/cart toggles and
// embedded in subscription listings.
type RecipeShort struct {
	ID          primitive.ObjectID `bson:"_id"         json:"id"`
	Name        string             `bson:"name"        json:"name"`
	Image       string             `bson:"image"       json:"image"`
	CookingTime int                `bson:"cookingTime" json:"cooking_time"`
}

// Membership is one (user, recipe) row of the favorites or cart set.
type Membership struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID    string             `bson:"userid"        json:"user_id"`
	RecipeID  primitive.ObjectID `bson:"recipeId"      json:"recipe_id"`
	CreatedAt time.Time          `bson:"createdAt"     json:"-"`
}
