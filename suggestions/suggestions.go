package suggestions

import (
	"net/http"
	"strconv"

	"foodgram/db"
	"foodgram/models"
	"foodgram/profile"
	"foodgram/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SuggestFollowers lists users the requester does not follow yet,
// excluding the requester, paginated.
func SuggestFollowers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = 10
	}
	skip := (page - 1) * limit

	followed, err := profile.FollowedAuthorIDs(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch follow data")
		return
	}
	excluded := append(followed, userID)

	filter := bson.M{"userid": bson.M{"$nin": excluded}}
	opts := options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "username", Value: 1}}).
		SetProjection(bson.M{
			"userid":    1,
			"username":  1,
			"firstName": 1,
			"lastName":  1,
			"email":     1,
		})

	cursor, err := db.UserCollection.Find(r.Context(), filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch suggestions")
		return
	}
	defer cursor.Close(r.Context())

	var users []models.User
	if err := cursor.All(r.Context(), &users); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode suggestions")
		return
	}

	suggested := make([]profile.UserResponse, 0, len(users))
	for i := range users {
		// suggested users are by construction not followed yet
		resp := profile.BuildUserResponse(r.Context(), &users[i], "")
		suggested = append(suggested, resp)
	}

	utils.RespondWithJSON(w, http.StatusOK, suggested)
}
