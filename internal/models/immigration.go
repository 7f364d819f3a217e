package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ImmigrationPost announces a work, study or training opportunity abroad.
type ImmigrationPost struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title         string             `json:"title" bson:"title"`
	TargetCountry string             `json:"targetCountry" bson:"targetCountry"`
	ProgramType   string             `json:"programType" bson:"programType"`
	Description   string             `json:"description" bson:"description"`
	Deadline      *time.Time         `json:"deadline,omitempty" bson:"deadline,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}
