package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID    string             `bson:"userid"        json:"id"`
	Email     string             `bson:"email"         json:"email"`
	Username  string             `bson:"username"      json:"username"`
	FirstName string             `bson:"firstName"     json:"first_name"`
	LastName  string             `bson:"lastName"      json:"last_name"`
	Password  string             `bson:"password"      json:"-"`
	CreatedAt time.Time          `bson:"createdAt"     json:"-"`
}

// Follow records that UserID is subscribed to AuthorID.
type Follow struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID    string             `bson:"userid"        json:"user_id"`
	AuthorID  string             `bson:"authorid"      json:"author_id"`
	CreatedAt time.Time          `bson:"createdAt"     json:"-"`
}
