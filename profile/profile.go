package profile

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"foodgram/db"
	"foodgram/models"
	"foodgram/mq"
	"foodgram/utils"
	"foodgram/validation"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserResponse is the user projection with the subscription flag scoped to
// the requesting user.
type UserResponse struct {
	Email        string `json:"email"`
	ID           string `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// SubscriptionResponse extends UserResponse with the author's recipes for
// the subscriptions listing.
type SubscriptionResponse struct {
	UserResponse
	Recipes      []models.RecipeShort `json:"recipes"`
	RecipesCount int64                `json:"recipes_count"`
}

func UserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, validation.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// BuildUserResponse renders user with is_subscribed resolved for
// requesterID (empty for anonymous requests).
func BuildUserResponse(ctx context.Context, user *models.User, requesterID string) UserResponse {
	return UserResponse{
		Email:        user.Email,
		ID:           user.UserID,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: IsSubscribed(ctx, requesterID, user.UserID),
	}
}

func buildSubscription(ctx context.Context, r *http.Request, author *models.User, requesterID string) SubscriptionResponse {
	limit := int64(0)
	if raw := r.URL.Query().Get("recipes_limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = int64(n)
		}
	}

	recipes := []models.RecipeShort{}
	opts := options.Find().SetSort(bson.D{{Key: "pubDate", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := db.RecipeCollection.Find(ctx, bson.M{"authorid": author.UserID}, opts)
	if err == nil {
		defer cursor.Close(ctx)
		_ = cursor.All(ctx, &recipes)
	}
	if recipes == nil {
		recipes = []models.RecipeShort{}
	}
	count, _ := db.RecipeCollection.CountDocuments(ctx, bson.M{"authorid": author.UserID})

	return SubscriptionResponse{
		UserResponse: BuildUserResponse(ctx, author, requesterID),
		Recipes:      recipes,
		RecipesCount: count,
	}
}

// GetProfile returns the authenticated user's own profile.
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	user, err := UserByID(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Пользователь не найден")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, BuildUserResponse(r.Context(), user, userID))
}

// GetUsers lists users with the standard page/limit envelope.
func GetUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page, limit := utils.ParsePagination(r)

	opts := options.Find().
		SetSort(bson.D{{Key: "firstName", Value: 1}, {Key: "lastName", Value: 1}, {Key: "username", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := db.UserCollection.Find(r.Context(), bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	defer cursor.Close(r.Context())

	var users []models.User
	if err := cursor.All(r.Context(), &users); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode users")
		return
	}

	requesterID := utils.GetUserIDFromRequest(r)
	results := make([]UserResponse, 0, len(users))
	for i := range users {
		results = append(results, BuildUserResponse(r.Context(), &users[i], requesterID))
	}
	count, _ := db.UserCollection.CountDocuments(r.Context(), bson.M{})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"count": count, "results": results})
}

// GetUserProfile returns another user's profile with is_subscribed scoped
// to the requester.
func GetUserProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user, err := UserByID(r.Context(), ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Пользователь не найден")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, BuildUserResponse(r.Context(), user, utils.GetUserIDFromRequest(r)))
}

// ToggleFollow subscribes the requester to the user in the path.
func ToggleFollow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	author, err := UserByID(r.Context(), ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Пользователь не найден")
		return
	}

	if err := FollowAuthor(r.Context(), mongoFollowStore{}, userID, author.UserID); err != nil {
		if errors.Is(err, validation.ErrSelfFollow) || errors.Is(err, validation.ErrAlreadyExists) {
			utils.RespondWithFieldError(w, http.StatusBadRequest, validation.Field(err), validation.Message(err))
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "DB insert failed")
		return
	}

	mq.Emit("follow-added", mq.Index{EntityType: "user", Method: "POST", EntityId: author.UserID, UserId: userID})
	utils.RespondWithJSON(w, http.StatusCreated, buildSubscription(r.Context(), r, author, userID))
}

// ToggleUnFollow removes the subscription.
func ToggleUnFollow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	author, err := UserByID(r.Context(), ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Пользователь не найден")
		return
	}

	if err := UnfollowAuthor(r.Context(), mongoFollowStore{}, userID, author.UserID); err != nil {
		if errors.Is(err, validation.ErrNotAMember) {
			utils.RespondWithFieldError(w, http.StatusBadRequest, validation.Field(err), validation.Message(err))
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "DB delete failed")
		return
	}

	mq.Emit("follow-removed", mq.Index{EntityType: "user", Method: "DELETE", EntityId: author.UserID, UserId: userID})
	w.WriteHeader(http.StatusNoContent)
}

// DoesFollow reports the subscription state of the requester for a user.
func DoesFollow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"is_subscribed": IsSubscribed(r.Context(), userID, ps.ByName("id"))})
}

// GetSubscriptions lists the authors the requester follows, with their
// recipes, paginated.
func GetSubscriptions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	page, limit := utils.ParsePagination(r)

	authorIDs, err := FollowedAuthorIDs(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch subscriptions")
		return
	}

	count := len(authorIDs)
	start := (page - 1) * limit
	if start > count {
		start = count
	}
	end := start + limit
	if end > count {
		end = count
	}

	results := make([]SubscriptionResponse, 0, end-start)
	for _, authorID := range authorIDs[start:end] {
		author, err := UserByID(r.Context(), authorID)
		if err != nil {
			continue
		}
		results = append(results, buildSubscription(r.Context(), r, author, userID))
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"count": count, "results": results})
}
