package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostType separates employer offers from job-seeker profiles in the jobs collection.
type PostType string

const (
	PostSeekingWorker PostType = "seeking_worker"
	PostSeekingJob    PostType = "seeking_job"
)

// WorkType is the employment arrangement of a job post.
type WorkType string

const (
	WorkFullTime  WorkType = "full_time"
	WorkPartTime  WorkType = "part_time"
	WorkContract  WorkType = "contract"
	WorkFreelance WorkType = "freelance"
	WorkRemote    WorkType = "remote"
)

// WorkTypes lists every accepted work type.
var WorkTypes = []WorkType{WorkFullTime, WorkPartTime, WorkContract, WorkFreelance, WorkRemote}

// Valid reports whether w is one of WorkTypes.
func (w WorkType) Valid() bool {
	for _, known := range WorkTypes {
		if w == known {
			return true
		}
	}
	return false
}

// Job is either a job offer or a job-seeker profile, depending on PostType.
type Job struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PostType    PostType           `json:"postType" bson:"postType"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	CompanyName string             `json:"companyName,omitempty" bson:"companyName,omitempty"`
	Country     string             `json:"country" bson:"country"`
	City        string             `json:"city" bson:"city"`
	CategoryID  string             `json:"categoryId" bson:"categoryId"`
	WorkType    WorkType           `json:"workType" bson:"workType"`
	Salary      string             `json:"salary,omitempty" bson:"salary,omitempty"`
	Phone       string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Email       string             `json:"email,omitempty" bson:"email,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}
