// Package shopping renders the downloadable shopping-list report from the
// requester's cart.
package shopping

import (
	"context"
	"net/http"

	"foodgram/db"
	"foodgram/favorites"
	"foodgram/models"
	"foodgram/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// collectLineItems loads every line item of the given recipes, keeping the
// cart order of the recipes and the stored order of items within each.
func collectLineItems(ctx context.Context, recipeIDs []primitive.ObjectID) ([]models.RecipeIngredient, error) {
	if len(recipeIDs) == 0 {
		return nil, nil
	}
	cursor, err := db.RecipeCollection.Find(ctx, bson.M{"_id": bson.M{"$in": recipeIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recipes []models.Recipe
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*models.Recipe, len(recipes))
	for i := range recipes {
		byID[recipes[i].ID] = &recipes[i]
	}

	var lineItems []models.RecipeIngredient
	for _, id := range recipeIDs {
		recipe, ok := byID[id]
		if !ok {
			continue
		}
		lineItems = append(lineItems, recipe.Ingredients...)
	}
	return lineItems, nil
}

// DownloadShoppingList streams the aggregated cart as a text attachment.
func DownloadShoppingList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	recipeIDs, err := favorites.CartRecipeIDs(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch shopping cart")
		return
	}
	lineItems, err := collectLineItems(r.Context(), recipeIDs)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch recipes")
		return
	}

	report := Render(Aggregate(lineItems))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="shopping-list.txt"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(report))
}
