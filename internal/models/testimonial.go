package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Testimonial struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Role      string             `json:"role,omitempty" bson:"role,omitempty"`
	Content   string             `json:"content" bson:"content"`
	Rating    int                `json:"rating,omitempty" bson:"rating,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
