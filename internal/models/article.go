package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Article struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Slug      string             `json:"slug" bson:"slug"`
	Title     string             `json:"title" bson:"title"`
	Summary   string             `json:"summary" bson:"summary"`
	ImageURL  string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Author    string             `json:"author,omitempty" bson:"author,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
