package recipes

import (
	"context"
	"testing"

	"foodgram/models"
	"foodgram/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestApplyRecipeUpdateReplacesLineItems(t *testing.T) {
	cat, ingIDs, tagIDs := newFakeCatalog()
	ctx := context.Background()

	created, err := ValidateIngredients(ctx, cat, []IngredientAmount{
		{ID: ingIDs[0], Amount: 2},
		{ID: ingIDs[1], Amount: 3},
	})
	require.NoError(t, err)
	recipe := models.Recipe{
		Name:        "Stew",
		Text:        "Boil everything",
		CookingTime: 40,
		TagIDs:      []primitive.ObjectID{tagIDs[0]},
		Ingredients: created,
	}
	require.Len(t, recipe.Ingredients, 2)

	replacement, err := ValidateIngredients(ctx, cat, []IngredientAmount{{ID: ingIDs[0], Amount: 5}})
	require.NoError(t, err)
	tags, err := ValidateTags(ctx, cat, []primitive.ObjectID{tagIDs[1]})
	require.NoError(t, err)

	updates, err := applyRecipeUpdate(&recipe, &recipePayload{}, replacement, tags)
	require.NoError(t, err)

	// the second line item is gone, not merged
	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, "Salt", recipe.Ingredients[0].Name)
	assert.Equal(t, 5, recipe.Ingredients[0].Amount)
	assert.Equal(t, []primitive.ObjectID{tagIDs[1]}, recipe.TagIDs)

	stored, ok := updates["ingredients"].([]models.RecipeIngredient)
	require.True(t, ok)
	require.Len(t, stored, 1)
	assert.Equal(t, ingIDs[0], stored[0].IngredientID)
}

func TestApplyRecipeUpdateKeepsAbsentScalars(t *testing.T) {
	cat, ingIDs, tagIDs := newFakeCatalog()
	ctx := context.Background()

	lineItems, err := ValidateIngredients(ctx, cat, []IngredientAmount{{ID: ingIDs[0], Amount: 1}})
	require.NoError(t, err)
	tags, err := ValidateTags(ctx, cat, []primitive.ObjectID{tagIDs[0]})
	require.NoError(t, err)

	recipe := models.Recipe{Name: "Stew", Text: "Boil everything", CookingTime: 40}
	updates, err := applyRecipeUpdate(&recipe, &recipePayload{Name: strPtr("Soup")}, lineItems, tags)
	require.NoError(t, err)

	assert.Equal(t, "Soup", recipe.Name)
	assert.Equal(t, "Boil everything", recipe.Text)
	assert.Equal(t, 40, recipe.CookingTime)

	assert.Equal(t, "Soup", updates["name"])
	_, hasText := updates["text"]
	assert.False(t, hasText)
	_, hasTime := updates["cookingTime"]
	assert.False(t, hasTime)
}

func TestApplyRecipeUpdateCookingTimeBounds(t *testing.T) {
	cat, ingIDs, tagIDs := newFakeCatalog()
	ctx := context.Background()

	lineItems, err := ValidateIngredients(ctx, cat, []IngredientAmount{{ID: ingIDs[0], Amount: 1}})
	require.NoError(t, err)
	tags, err := ValidateTags(ctx, cat, []primitive.ObjectID{tagIDs[0]})
	require.NoError(t, err)

	recipe := models.Recipe{Name: "Stew", CookingTime: 40}
	for _, minutes := range []int{0, models.MaxCookingTime + 1} {
		_, err := applyRecipeUpdate(&recipe, &recipePayload{CookingTime: intPtr(minutes)}, lineItems, tags)
		assert.ErrorIs(t, err, validation.ErrInvalidAmount, "minutes %d", minutes)
		assert.Equal(t, 40, recipe.CookingTime)
	}
}
