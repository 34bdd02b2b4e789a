package recipes

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"foodgram/catalog"
	"foodgram/db"
	"foodgram/favorites"
	"foodgram/models"
	"foodgram/mq"
	"foodgram/profile"
	"foodgram/utils"
	"foodgram/validation"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// recipePayload is the JSON write body. Scalar fields are pointers so
// updates can tell "absent" from "empty": absent fields keep their prior
// value, ingredients and tags are always replaced wholesale.
type recipePayload struct {
	Name        *string              `json:"name"`
	Text        *string              `json:"text"`
	Image       *string              `json:"image"`
	CookingTime *int                 `json:"cooking_time"`
	Ingredients []IngredientAmount   `json:"ingredients"`
	Tags        []primitive.ObjectID `json:"tags"`
}

// RecipeResponse is the full projection, with membership flags scoped to
// the requesting user.
type RecipeResponse struct {
	ID               primitive.ObjectID        `json:"id"`
	Tags             []models.Tag              `json:"tags"`
	Author           profile.UserResponse      `json:"author"`
	Ingredients      []models.RecipeIngredient `json:"ingredients"`
	IsFavorited      bool                      `json:"is_favorited"`
	IsInShoppingCart bool                      `json:"is_in_shopping_cart"`
	Name             string                    `json:"name"`
	Image            string                    `json:"image"`
	Text             string                    `json:"text"`
	CookingTime      int                       `json:"cooking_time"`
}

func buildResponse(ctx context.Context, recipe *models.Recipe, requesterID string) RecipeResponse {
	tags, err := catalog.TagsByIDs(ctx, recipe.TagIDs)
	if err != nil || tags == nil {
		tags = []models.Tag{}
	}

	var authorResp profile.UserResponse
	if author, err := profile.UserByID(ctx, recipe.AuthorID); err == nil {
		authorResp = profile.BuildUserResponse(ctx, author, requesterID)
	}

	return RecipeResponse{
		ID:               recipe.ID,
		Tags:             tags,
		Author:           authorResp,
		Ingredients:      recipe.Ingredients,
		IsFavorited:      favorites.IsFavorited(ctx, requesterID, recipe.ID),
		IsInShoppingCart: favorites.IsInCart(ctx, requesterID, recipe.ID),
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
	}
}

func validateCookingTime(minutes int) error {
	if minutes < models.MinValue {
		return validation.NewFieldError("cooking_time", "Время приготовления не может быть менее 1 минуты.", validation.ErrInvalidAmount)
	}
	if minutes > models.MaxCookingTime {
		return validation.NewFieldError("cooking_time", "Время приготовления не может быть более 32000 минут.", validation.ErrInvalidAmount)
	}
	return nil
}

func intersectIDs(a, b []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(a))
	for _, id := range a {
		seen[id] = true
	}
	out := make([]primitive.ObjectID, 0, len(b))
	for _, id := range b {
		if seen[id] {
			out = append(out, id)
		}
	}
	return out
}

func tagIDsOf(tags []models.Tag) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// GetRecipes lists recipes newest first, filtered by author, tag slug and
// the requester's membership sets, with the page/limit envelope.
func GetRecipes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	requesterID := utils.GetUserIDFromRequest(r)
	params := r.URL.Query()
	query := bson.M{}

	if authors := params["author"]; len(authors) > 0 {
		query["authorid"] = bson.M{"$in": authors}
	}

	if slugs := params["tags"]; len(slugs) > 0 {
		cursor, err := db.TagCollection.Find(ctx, bson.M{"slug": bson.M{"$in": slugs}})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve tags")
			return
		}
		var tags []models.Tag
		if err := cursor.All(ctx, &tags); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve tags")
			return
		}
		query["tagIds"] = bson.M{"$in": tagIDsOf(tags)}
	}

	// membership filters only apply to authenticated requesters
	var memberIDs []primitive.ObjectID
	memberFiltered := false
	if params.Get("is_favorited") == "1" && requesterID != "" {
		ids, err := favorites.FavoriteRecipeIDs(ctx, requesterID)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch favorites")
			return
		}
		memberIDs, memberFiltered = ids, true
	}
	if params.Get("is_in_shopping_cart") == "1" && requesterID != "" {
		ids, err := favorites.CartRecipeIDs(ctx, requesterID)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch shopping cart")
			return
		}
		if memberFiltered {
			memberIDs = intersectIDs(memberIDs, ids)
		} else {
			memberIDs, memberFiltered = ids, true
		}
	}
	if memberFiltered {
		query["_id"] = bson.M{"$in": memberIDs}
	}

	page, limit := utils.ParsePagination(r)
	opts := options.Find().
		SetSort(bson.D{{Key: "pubDate", Value: -1}, {Key: "name", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := db.RecipeCollection.Find(ctx, query, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch recipes")
		return
	}
	defer cursor.Close(ctx)

	var recipes []models.Recipe
	if err := cursor.All(ctx, &recipes); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode recipes")
		return
	}

	results := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		results = append(results, buildResponse(ctx, &recipes[i], requesterID))
	}
	count, _ := db.RecipeCollection.CountDocuments(ctx, query)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"count": count, "results": results})
}

func GetRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	var recipe models.Recipe
	if err := db.RecipeCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&recipe); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, buildResponse(r.Context(), &recipe, utils.GetUserIDFromRequest(r)))
}

func respondValidation(w http.ResponseWriter, err error) {
	utils.RespondWithFieldError(w, http.StatusBadRequest, validation.Field(err), validation.Message(err))
}

func CreateRecipe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	var payload recipePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if payload.Name == nil || *payload.Name == "" {
		utils.RespondWithFieldError(w, http.StatusBadRequest, "name", "Введите название рецепта.")
		return
	}
	if payload.Text == nil || *payload.Text == "" {
		utils.RespondWithFieldError(w, http.StatusBadRequest, "text", "Введите описание рецепта.")
		return
	}
	if payload.CookingTime == nil {
		utils.RespondWithFieldError(w, http.StatusBadRequest, "cooking_time", "Укажите время приготовления.")
		return
	}
	if err := validateCookingTime(*payload.CookingTime); err != nil {
		respondValidation(w, err)
		return
	}

	// validation runs fully before any write
	lineItems, err := ValidateIngredients(ctx, catalog.Store{}, payload.Ingredients)
	if err != nil {
		respondValidation(w, err)
		return
	}
	tags, err := ValidateTags(ctx, catalog.Store{}, payload.Tags)
	if err != nil {
		respondValidation(w, err)
		return
	}

	if payload.Image == nil || *payload.Image == "" {
		utils.RespondWithFieldError(w, http.StatusBadRequest, "image", "Добавьте изображение рецепта.")
		return
	}
	imagePath, err := utils.SaveBase64Image(*payload.Image, "recipes")
	if err != nil {
		utils.RespondWithFieldError(w, http.StatusBadRequest, "image", "Некорректное изображение.")
		return
	}

	recipe := models.Recipe{
		AuthorID:    userID,
		Name:        *payload.Name,
		Text:        *payload.Text,
		Image:       imagePath,
		CookingTime: *payload.CookingTime,
		TagIDs:      tagIDsOf(tags),
		Ingredients: lineItems,
		PubDate:     time.Now(),
	}

	result, err := db.RecipeCollection.InsertOne(ctx, recipe)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB insert failed")
		return
	}
	recipe.ID = result.InsertedID.(primitive.ObjectID)

	mq.Emit("recipe-created", mq.Index{EntityType: "recipe", Method: "POST", EntityId: recipe.ID.Hex(), UserId: userID})
	utils.RespondWithJSON(w, http.StatusCreated, buildResponse(ctx, &recipe, userID))
}

// applyRecipeUpdate builds the $set document for a partial update and
// mirrors it onto the in-memory recipe. Validated line items and tags
// always replace the stored ones; scalar fields change only when the
// payload carries them.
func applyRecipeUpdate(recipe *models.Recipe, payload *recipePayload, lineItems []models.RecipeIngredient, tags []models.Tag) (bson.M, error) {
	updates := bson.M{
		"ingredients": lineItems,
		"tagIds":      tagIDsOf(tags),
	}
	recipe.Ingredients = lineItems
	recipe.TagIDs = tagIDsOf(tags)

	if payload.Name != nil {
		updates["name"] = *payload.Name
		recipe.Name = *payload.Name
	}
	if payload.Text != nil {
		updates["text"] = *payload.Text
		recipe.Text = *payload.Text
	}
	if payload.CookingTime != nil {
		if err := validateCookingTime(*payload.CookingTime); err != nil {
			return nil, err
		}
		updates["cookingTime"] = *payload.CookingTime
		recipe.CookingTime = *payload.CookingTime
	}
	return updates, nil
}

func UpdateRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	var recipe models.Recipe
	if err := db.RecipeCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	if recipe.AuthorID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Изменять рецепт может только автор")
		return
	}

	var payload recipePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	// line items and tags are replaced in full on every update
	lineItems, err := ValidateIngredients(ctx, catalog.Store{}, payload.Ingredients)
	if err != nil {
		respondValidation(w, err)
		return
	}
	tags, err := ValidateTags(ctx, catalog.Store{}, payload.Tags)
	if err != nil {
		respondValidation(w, err)
		return
	}

	updates, err := applyRecipeUpdate(&recipe, &payload, lineItems, tags)
	if err != nil {
		respondValidation(w, err)
		return
	}
	if payload.Image != nil && *payload.Image != "" {
		imagePath, err := utils.SaveBase64Image(*payload.Image, "recipes")
		if err != nil {
			utils.RespondWithFieldError(w, http.StatusBadRequest, "image", "Некорректное изображение.")
			return
		}
		updates["image"] = imagePath
		recipe.Image = imagePath
	}

	// single-document $set keeps the line-item replacement all-or-nothing
	if _, err := db.RecipeCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB update failed")
		return
	}

	mq.Emit("recipe-updated", mq.Index{EntityType: "recipe", Method: "PATCH", EntityId: id.Hex(), UserId: userID})
	utils.RespondWithJSON(w, http.StatusOK, buildResponse(ctx, &recipe, userID))
}

func DeleteRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	var recipe models.Recipe
	if err := db.RecipeCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	if recipe.AuthorID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Удалять рецепт может только автор")
		return
	}

	if _, err := db.RecipeCollection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB delete failed")
		return
	}
	favorites.DeleteForRecipe(ctx, id)

	mq.Emit("recipe-deleted", mq.Index{EntityType: "recipe", Method: "DELETE", EntityId: id.Hex(), UserId: userID})
	w.WriteHeader(http.StatusNoContent)
}
