// Package favorites implements the favorite and shopping-cart membership
// trackers. Both share one contract: add is idempotency-checked and returns
// the short recipe projection, remove distinguishes unknown recipes (404)
// from pairs that were never added (400).
package favorites

import (
	"errors"
	"net/http"

	"foodgram/mq"
	"foodgram/utils"
	"foodgram/validation"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func addHandler(store MembershipStore, event string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		userID := utils.GetUserIDFromRequest(r)
		recipeID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Рецепта не существует")
			return
		}

		recipe, err := Add(r.Context(), store, userID, recipeID)
		if err != nil {
			// the add path reports an unknown recipe as a validation
			// error, not a 404
			if errors.Is(err, validation.ErrNotFound) || errors.Is(err, validation.ErrAlreadyExists) {
				utils.RespondWithFieldError(w, http.StatusBadRequest, validation.Field(err), validation.Message(err))
				return
			}
			utils.RespondWithError(w, http.StatusInternalServerError, "DB insert failed")
			return
		}

		mq.Emit(event, mq.Index{EntityType: "recipe", Method: "POST", EntityId: recipeID.Hex(), UserId: userID})
		utils.RespondWithJSON(w, http.StatusCreated, recipe)
	}
}

func removeHandler(store MembershipStore, event string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		userID := utils.GetUserIDFromRequest(r)
		recipeID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
		if err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Рецепта не существует")
			return
		}

		if err := Remove(r.Context(), store, userID, recipeID); err != nil {
			switch {
			case errors.Is(err, validation.ErrNotFound):
				utils.RespondWithFieldError(w, http.StatusNotFound, validation.Field(err), validation.Message(err))
			case errors.Is(err, validation.ErrNotAMember):
				utils.RespondWithFieldError(w, http.StatusBadRequest, validation.Field(err), validation.Message(err))
			default:
				utils.RespondWithError(w, http.StatusInternalServerError, "DB delete failed")
			}
			return
		}

		mq.Emit(event, mq.Index{EntityType: "recipe", Method: "DELETE", EntityId: recipeID.Hex(), UserId: userID})
		w.WriteHeader(http.StatusNoContent)
	}
}

var (
	AddFavorite    = addHandler(favoriteStore, "favorite-added")
	RemoveFavorite = removeHandler(favoriteStore, "favorite-removed")
	AddToCart      = addHandler(cartStore, "cart-added")
	RemoveFromCart = removeHandler(cartStore, "cart-removed")
)
