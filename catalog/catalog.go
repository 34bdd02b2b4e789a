// Package catalog serves the tag and ingredient reference data. The data
// is read-only at runtime; the importer owns writes.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"foodgram/db"
	"foodgram/models"
	"foodgram/utils"
	"foodgram/validation"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store resolves catalog rows by id. It satisfies the lookup interface the
// recipe validators accept.
type Store struct{}

func (Store) IngredientByID(ctx context.Context, id primitive.ObjectID) (*models.Ingredient, error) {
	var ing models.Ingredient
	err := db.IngredientCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&ing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, validation.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

func (Store) TagByID(ctx context.Context, id primitive.ObjectID) (*models.Tag, error) {
	var tag models.Tag
	err := db.TagCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&tag)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, validation.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// TagsByIDs loads the tags referenced by a stored recipe, preserving the
// order of ids.
func TagsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Tag, error) {
	cursor, err := db.TagCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tags []models.Tag
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Tag, len(tags))
	for _, t := range tags {
		byID[t.ID] = t
	}
	ordered := make([]models.Tag, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			ordered = append(ordered, t)
		}
	}
	return ordered, nil
}

func GetTags(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cursor, err := db.TagCollection.Find(r.Context(), bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch tags")
		return
	}
	defer cursor.Close(r.Context())

	var tags []models.Tag
	if err := cursor.All(r.Context(), &tags); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode tags")
		return
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	utils.RespondWithJSON(w, http.StatusOK, tags)
}

func GetTag(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Tag not found")
		return
	}
	tag, err := Store{}.TagByID(r.Context(), id)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Tag not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tag)
}

func GetIngredients(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := bson.M{}
	if name := r.URL.Query().Get("name"); name != "" {
		query["name"] = bson.M{"$regex": fmt.Sprintf("^%s", regexp.QuoteMeta(name)), "$options": "i"}
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := db.IngredientCollection.Find(r.Context(), query, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch ingredients")
		return
	}
	defer cursor.Close(r.Context())

	var ingredients []models.Ingredient
	if err := cursor.All(r.Context(), &ingredients); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode ingredients")
		return
	}
	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}
	utils.RespondWithJSON(w, http.StatusOK, ingredients)
}

func GetIngredient(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Ingredient not found")
		return
	}
	ing, err := Store{}.IngredientByID(r.Context(), id)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Ingredient not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ing)
}
