package favorites

import (
	"context"
	"testing"

	"foodgram/models"
	"foodgram/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeMembershipStore struct {
	recipes map[primitive.ObjectID]models.RecipeShort
	members map[string]bool
}

func newFakeMembershipStore(recipes ...models.RecipeShort) *fakeMembershipStore {
	s := &fakeMembershipStore{
		recipes: make(map[primitive.ObjectID]models.RecipeShort),
		members: make(map[string]bool),
	}
	for _, r := range recipes {
		s.recipes[r.ID] = r
	}
	return s
}

func (s *fakeMembershipStore) key(userID string, recipeID primitive.ObjectID) string {
	return userID + ":" + recipeID.Hex()
}

func (s *fakeMembershipStore) RecipeByID(_ context.Context, id primitive.ObjectID) (*models.RecipeShort, error) {
	r, ok := s.recipes[id]
	if !ok {
		return nil, validation.NewFieldError("error", "Рецепта не существует", validation.ErrNotFound)
	}
	return &r, nil
}

func (s *fakeMembershipStore) Exists(_ context.Context, userID string, recipeID primitive.ObjectID) (bool, error) {
	return s.members[s.key(userID, recipeID)], nil
}

func (s *fakeMembershipStore) Insert(_ context.Context, m models.Membership) error {
	k := s.key(m.UserID, m.RecipeID)
	if s.members[k] {
		return validation.NewFieldError("error", "Рецепт уже добавлен", validation.ErrAlreadyExists)
	}
	s.members[k] = true
	return nil
}

func (s *fakeMembershipStore) Delete(_ context.Context, userID string, recipeID primitive.ObjectID) error {
	delete(s.members, s.key(userID, recipeID))
	return nil
}

func TestAddReturnsShortProjection(t *testing.T) {
	recipe := models.RecipeShort{ID: primitive.NewObjectID(), Name: "Борщ", Image: "/static/uploads/recipes/b.png", CookingTime: 90}
	store := newFakeMembershipStore(recipe)

	got, err := Add(context.Background(), store, "user-1", recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe, *got)

	exists, _ := store.Exists(context.Background(), "user-1", recipe.ID)
	assert.True(t, exists)
}

func TestAddUnknownRecipe(t *testing.T) {
	store := newFakeMembershipStore()

	_, err := Add(context.Background(), store, "user-1", primitive.NewObjectID())
	assert.ErrorIs(t, err, validation.ErrNotFound)
}

func TestAddTwiceFails(t *testing.T) {
	recipe := models.RecipeShort{ID: primitive.NewObjectID(), Name: "Суп", CookingTime: 30}
	store := newFakeMembershipStore(recipe)

	_, err := Add(context.Background(), store, "user-1", recipe.ID)
	require.NoError(t, err)

	_, err = Add(context.Background(), store, "user-1", recipe.ID)
	assert.ErrorIs(t, err, validation.ErrAlreadyExists)
}

func TestAddIsScopedPerUser(t *testing.T) {
	recipe := models.RecipeShort{ID: primitive.NewObjectID(), Name: "Суп", CookingTime: 30}
	store := newFakeMembershipStore(recipe)

	_, err := Add(context.Background(), store, "user-1", recipe.ID)
	require.NoError(t, err)

	_, err = Add(context.Background(), store, "user-2", recipe.ID)
	assert.NoError(t, err)
}

func TestRemove(t *testing.T) {
	recipe := models.RecipeShort{ID: primitive.NewObjectID(), Name: "Суп", CookingTime: 30}
	store := newFakeMembershipStore(recipe)

	_, err := Add(context.Background(), store, "user-1", recipe.ID)
	require.NoError(t, err)

	require.NoError(t, Remove(context.Background(), store, "user-1", recipe.ID))

	exists, _ := store.Exists(context.Background(), "user-1", recipe.ID)
	assert.False(t, exists)
}

func TestRemoveNeverAdded(t *testing.T) {
	recipe := models.RecipeShort{ID: primitive.NewObjectID(), Name: "Суп", CookingTime: 30}
	store := newFakeMembershipStore(recipe)

	err := Remove(context.Background(), store, "user-1", recipe.ID)
	assert.ErrorIs(t, err, validation.ErrNotAMember)
}

func TestRemoveUnknownRecipe(t *testing.T) {
	store := newFakeMembershipStore()

	err := Remove(context.Background(), store, "user-1", primitive.NewObjectID())
	assert.ErrorIs(t, err, validation.ErrNotFound)
}
