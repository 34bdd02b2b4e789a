package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"foodgram/db"
	"foodgram/globals"
	"foodgram/models"
	"foodgram/rdx"
	"foodgram/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

type registerPayload struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

func (p *registerPayload) validate() (field, msg string) {
	switch {
	case p.Email == "" || len(p.Email) > models.MaxEmailLength:
		return "email", "Введите корректный адрес электронной почты."
	case p.Username == "" || len(p.Username) > models.MaxFieldLength || !usernameRe.MatchString(p.Username):
		return "username", "Некорректный ввод"
	case p.FirstName == "" || len(p.FirstName) > models.MaxFieldLength:
		return "first_name", "Введите имя."
	case p.LastName == "" || len(p.LastName) > models.MaxFieldLength:
		return "last_name", "Введите фамилию."
	case p.Password == "" || len(p.Password) > models.MaxFieldLength:
		return "password", "Введите пароль."
	}
	return "", ""
}

func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload registerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if field, msg := payload.validate(); field != "" {
		utils.RespondWithFieldError(w, http.StatusBadRequest, field, msg)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.User{
		UserID:    uuid.NewString(),
		Email:     payload.Email,
		Username:  payload.Username,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Password:  string(hash),
		CreatedAt: time.Now(),
	}

	if _, err := db.UserCollection.InsertOne(r.Context(), user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "Пользователь с такой почтой или именем уже существует.")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "DB insert failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, user)
}

func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"email": payload.Email}).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Неверные учетные данные.")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)) != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Неверные учетные данные.")
		return
	}

	token, err := CreateToken(user.UserID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"auth_token": token})
}

func LogoutUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	revokeCurrent(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func RefreshToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	token, err := CreateToken(userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	revokeCurrent(r.Context())
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"auth_token": token})
}

func revokeCurrent(ctx context.Context) {
	claims, ok := ctx.Value(globals.TokenIDKey).(*Claims)
	if !ok || claims.ExpiresAt == nil {
		return
	}
	_ = rdx.RevokeToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
}
