package profile

import (
	"context"
	"time"

	"foodgram/db"
	"foodgram/models"
	"foodgram/validation"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FollowStore is the persistence surface of the follow tracker. The mongo
// implementation backs the handlers; tests use an in-memory fake.
type FollowStore interface {
	Following(ctx context.Context, userID, authorID string) (bool, error)
	Insert(ctx context.Context, follow models.Follow) error
	Delete(ctx context.Context, userID, authorID string) error
}

// Follow records that userID subscribes to authorID. Self-follow is
// rejected before any membership check.
func FollowAuthor(ctx context.Context, store FollowStore, userID, authorID string) error {
	if userID == authorID {
		return validation.NewFieldError("errors", "Нельзя подписаться на себя", validation.ErrSelfFollow)
	}
	exists, err := store.Following(ctx, userID, authorID)
	if err != nil {
		return err
	}
	if exists {
		return validation.NewFieldError("errors", "Вы уже подписаны на пользователя", validation.ErrAlreadyExists)
	}
	return store.Insert(ctx, models.Follow{
		UserID:    userID,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	})
}

func UnfollowAuthor(ctx context.Context, store FollowStore, userID, authorID string) error {
	exists, err := store.Following(ctx, userID, authorID)
	if err != nil {
		return err
	}
	if !exists {
		return validation.NewFieldError("error", "Вы не были подписаны на пользователя", validation.ErrNotAMember)
	}
	return store.Delete(ctx, userID, authorID)
}

type mongoFollowStore struct{}

func (mongoFollowStore) Following(ctx context.Context, userID, authorID string) (bool, error) {
	err := db.FollowCollection.FindOne(ctx, bson.M{"userid": userID, "authorid": authorID}).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}

func (mongoFollowStore) Insert(ctx context.Context, follow models.Follow) error {
	_, err := db.FollowCollection.InsertOne(ctx, follow)
	if mongo.IsDuplicateKeyError(err) {
		// racing duplicate resolved by the unique index
		return validation.NewFieldError("errors", "Вы уже подписаны на пользователя", validation.ErrAlreadyExists)
	}
	return err
}

func (mongoFollowStore) Delete(ctx context.Context, userID, authorID string) error {
	_, err := db.FollowCollection.DeleteOne(ctx, bson.M{"userid": userID, "authorid": authorID})
	return err
}

// IsSubscribed reports whether userID follows authorID. Anonymous
// requesters (empty userID) are never subscribed.
func IsSubscribed(ctx context.Context, userID, authorID string) bool {
	if userID == "" {
		return false
	}
	ok, err := mongoFollowStore{}.Following(ctx, userID, authorID)
	return err == nil && ok
}

// FollowedAuthorIDs lists the authors userID subscribes to, in
// subscription order.
func FollowedAuthorIDs(ctx context.Context, userID string) ([]string, error) {
	cursor, err := db.FollowCollection.Find(ctx, bson.M{"userid": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var follows []models.Follow
	if err := cursor.All(ctx, &follows); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(follows))
	for _, f := range follows {
		ids = append(ids, f.AuthorID)
	}
	return ids, nil
}
