package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Competition is a public-sector recruitment announcement.
type Competition struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title        string             `json:"title" bson:"title"`
	Organizer    string             `json:"organizer" bson:"organizer"`
	Description  string             `json:"description" bson:"description"`
	Positions    int                `json:"positions,omitempty" bson:"positions,omitempty"`
	Location     string             `json:"location,omitempty" bson:"location,omitempty"`
	Deadline     *time.Time         `json:"deadline,omitempty" bson:"deadline,omitempty"`
	OfficialLink string             `json:"officialLink,omitempty" bson:"officialLink,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}
