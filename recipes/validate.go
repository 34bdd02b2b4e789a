package recipes

import (
	"context"
	"errors"

	"foodgram/models"
	"foodgram/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IngredientAmount is one {id, amount} entry of a recipe write payload.
type IngredientAmount struct {
	ID     primitive.ObjectID `json:"id"`
	Amount int                `json:"amount"`
}

// CatalogLookup is the read-only view of the catalog store the validators
// need. catalog.Store implements it; tests use map-backed fakes.
type CatalogLookup interface {
	IngredientByID(ctx context.Context, id primitive.ObjectID) (*models.Ingredient, error)
	TagByID(ctx context.Context, id primitive.ObjectID) (*models.Tag, error)
}

// ValidateIngredients checks a submitted ingredient list against the
// catalog and resolves it into recipe line items, preserving input order.
// Entries are checked in input order: unknown id, then amount bounds, then
// repeat of an earlier id.
func ValidateIngredients(ctx context.Context, lookup CatalogLookup, raw []IngredientAmount) ([]models.RecipeIngredient, error) {
	if len(raw) == 0 {
		return nil, validation.NewFieldError("ingredients", "Нужно добавить ингредиент", validation.ErrEmptyInput)
	}

	seen := make(map[primitive.ObjectID]bool, len(raw))
	items := make([]models.RecipeIngredient, 0, len(raw))
	for _, entry := range raw {
		ingredient, err := lookup.IngredientByID(ctx, entry.ID)
		if errors.Is(err, validation.ErrNotFound) {
			return nil, validation.NewFieldError("ingredients", "Ингредиент не существует", validation.ErrNotFound)
		}
		if err != nil {
			return nil, err
		}
		if entry.Amount < models.MinValue || entry.Amount > models.MaxAmount {
			return nil, validation.NewFieldError("ingredients", "Укажите количество для ингредиента", validation.ErrInvalidAmount)
		}
		if seen[entry.ID] {
			return nil, validation.NewFieldError("ingredients", "Ингредиент повторяется", validation.ErrDuplicate)
		}
		seen[entry.ID] = true
		items = append(items, models.RecipeIngredient{
			IngredientID:    ingredient.ID,
			Name:            ingredient.Name,
			MeasurementUnit: ingredient.MeasurementUnit,
			Amount:          entry.Amount,
		})
	}
	return items, nil
}

// ValidateTags resolves a submitted tag id list, rejecting unknown and
// repeated ids. The returned list preserves input order.
func ValidateTags(ctx context.Context, lookup CatalogLookup, raw []primitive.ObjectID) ([]models.Tag, error) {
	if len(raw) == 0 {
		return nil, validation.NewFieldError("tags", "Нужно добавить тег", validation.ErrEmptyInput)
	}

	seen := make(map[primitive.ObjectID]bool, len(raw))
	tags := make([]models.Tag, 0, len(raw))
	for _, id := range raw {
		tag, err := lookup.TagByID(ctx, id)
		if errors.Is(err, validation.ErrNotFound) {
			return nil, validation.NewFieldError("tags", "Тега не существует", validation.ErrNotFound)
		}
		if err != nil {
			return nil, err
		}
		if seen[id] {
			return nil, validation.NewFieldError("tags", "Тег повторяется", validation.ErrDuplicate)
		}
		seen[id] = true
		tags = append(tags, *tag)
	}
	return tags, nil
}
