package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MeetingStatus is the lifecycle state of a scheduled meeting.
type MeetingStatus string

const (
	MeetingScheduled MeetingStatus = "scheduled"
	MeetingCancelled MeetingStatus = "cancelled"
	MeetingHeld      MeetingStatus = "held"
)

// Meeting is a supervisor-scheduled meeting with a project team.
type Meeting struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID primitive.ObjectID `bson:"project_id" json:"project_id"`
	Title     string             `bson:"title" json:"title"`
	Agenda    string             `bson:"agenda,omitempty" json:"agenda,omitempty"`
	Link      string             `bson:"link,omitempty" json:"link,omitempty"`
	Status    MeetingStatus      `bson:"status" json:"status"`

	ScheduledAt time.Time          `bson:"scheduled_at" json:"scheduled_at"`
	CreatedBy   primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
