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

type fakeCatalog struct {
	ingredients map[primitive.ObjectID]models.Ingredient
	tags        map[primitive.ObjectID]models.Tag
}

func (f fakeCatalog) IngredientByID(_ context.Context, id primitive.ObjectID) (*models.Ingredient, error) {
	ing, ok := f.ingredients[id]
	if !ok {
		return nil, validation.ErrNotFound
	}
	return &ing, nil
}

func (f fakeCatalog) TagByID(_ context.Context, id primitive.ObjectID) (*models.Tag, error) {
	tag, ok := f.tags[id]
	if !ok {
		return nil, validation.ErrNotFound
	}
	return &tag, nil
}

func newFakeCatalog() (fakeCatalog, []primitive.ObjectID, []primitive.ObjectID) {
	ingIDs := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()}
	tagIDs := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}
	cat := fakeCatalog{
		ingredients: map[primitive.ObjectID]models.Ingredient{
			ingIDs[0]: {ID: ingIDs[0], Name: "Salt", MeasurementUnit: "g"},
			ingIDs[1]: {ID: ingIDs[1], Name: "Pepper", MeasurementUnit: "g"},
			ingIDs[2]: {ID: ingIDs[2], Name: "Milk", MeasurementUnit: "ml"},
		},
		tags: map[primitive.ObjectID]models.Tag{
			tagIDs[0]: {ID: tagIDs[0], Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
			tagIDs[1]: {ID: tagIDs[1], Name: "Dinner", Color: "#49B64E", Slug: "dinner"},
		},
	}
	return cat, ingIDs, tagIDs
}

func TestValidateIngredientsOK(t *testing.T) {
	cat, ingIDs, _ := newFakeCatalog()

	raw := []IngredientAmount{
		{ID: ingIDs[1], Amount: 3},
		{ID: ingIDs[0], Amount: models.MinValue},
		{ID: ingIDs[2], Amount: models.MaxAmount},
	}
	items, err := ValidateIngredients(context.Background(), cat, raw)
	require.NoError(t, err)
	require.Len(t, items, len(raw))

	// input order is preserved
	assert.Equal(t, "Pepper", items[0].Name)
	assert.Equal(t, "Salt", items[1].Name)
	assert.Equal(t, "Milk", items[2].Name)
	assert.Equal(t, 3, items[0].Amount)
	assert.Equal(t, models.MaxAmount, items[2].Amount)
	assert.Equal(t, "ml", items[2].MeasurementUnit)
}

func TestValidateIngredientsEmpty(t *testing.T) {
	cat, _, _ := newFakeCatalog()

	_, err := ValidateIngredients(context.Background(), cat, nil)
	assert.ErrorIs(t, err, validation.ErrEmptyInput)
	assert.Equal(t, "ingredients", validation.Field(err))

	_, err = ValidateIngredients(context.Background(), cat, []IngredientAmount{})
	assert.ErrorIs(t, err, validation.ErrEmptyInput)
}

func TestValidateIngredientsUnknownID(t *testing.T) {
	cat, ingIDs, _ := newFakeCatalog()

	raw := []IngredientAmount{
		{ID: ingIDs[0], Amount: 2},
		{ID: primitive.NewObjectID(), Amount: 2},
	}
	_, err := ValidateIngredients(context.Background(), cat, raw)
	assert.ErrorIs(t, err, validation.ErrNotFound)
}

func TestValidateIngredientsAmountBounds(t *testing.T) {
	cat, ingIDs, _ := newFakeCatalog()

	for _, amount := range []int{0, -1, models.MaxAmount + 1} {
		_, err := ValidateIngredients(context.Background(), cat, []IngredientAmount{{ID: ingIDs[0], Amount: amount}})
		assert.ErrorIs(t, err, validation.ErrInvalidAmount, "amount %d", amount)
	}
}

func TestValidateIngredientsDuplicate(t *testing.T) {
	cat, ingIDs, _ := newFakeCatalog()

	raw := []IngredientAmount{
		{ID: ingIDs[0], Amount: 2},
		{ID: ingIDs[1], Amount: 4},
		{ID: ingIDs[0], Amount: 7},
	}
	_, err := ValidateIngredients(context.Background(), cat, raw)
	assert.ErrorIs(t, err, validation.ErrDuplicate)
}

func TestValidateIngredientsChecksNotFoundBeforeAmount(t *testing.T) {
	cat, _, _ := newFakeCatalog()

	// unknown id with an invalid amount reports the unknown id
	raw := []IngredientAmount{{ID: primitive.NewObjectID(), Amount: 0}}
	_, err := ValidateIngredients(context.Background(), cat, raw)
	assert.ErrorIs(t, err, validation.ErrNotFound)
}

func TestValidateTagsOK(t *testing.T) {
	cat, _, tagIDs := newFakeCatalog()

	tags, err := ValidateTags(context.Background(), cat, []primitive.ObjectID{tagIDs[1], tagIDs[0]})
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "Dinner", tags[0].Name)
	assert.Equal(t, "Breakfast", tags[1].Name)
}

func TestValidateTagsErrors(t *testing.T) {
	cat, _, tagIDs := newFakeCatalog()

	_, err := ValidateTags(context.Background(), cat, nil)
	assert.ErrorIs(t, err, validation.ErrEmptyInput)
	assert.Equal(t, "tags", validation.Field(err))

	_, err = ValidateTags(context.Background(), cat, []primitive.ObjectID{primitive.NewObjectID()})
	assert.ErrorIs(t, err, validation.ErrNotFound)

	_, err = ValidateTags(context.Background(), cat, []primitive.ObjectID{tagIDs[0], tagIDs[0]})
	assert.ErrorIs(t, err, validation.ErrDuplicate)
}
