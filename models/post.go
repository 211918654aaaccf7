package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a reply on a social wall post
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	UserName  string             `bson:"userName" json:"userName"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Post is a farmer's social wall entry, optionally tied to a completed mission
type Post struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	User      primitive.ObjectID   `bson:"user" json:"user"`
	UserName  string               `bson:"userName" json:"userName"`
	Avatar    string               `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Content   string               `bson:"content" json:"content"`
	Image     string               `bson:"image,omitempty" json:"image,omitempty"`
	Mission   primitive.ObjectID   `bson:"mission,omitempty" json:"mission,omitempty"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	Comments  []Comment            `bson:"comments" json:"comments"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
}
