package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectPending   ProjectStatus = "pending"
	ProjectActive    ProjectStatus = "active"
	ProjectRejected  ProjectStatus = "rejected"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

// Project is the unit a team of students works on under a supervisor.
//
// Progress is a denormalized hint: it is always recomputable from the
// project's task set and is refreshed after every task mutation. Readers
// that need exact numbers recompute from tasks instead of trusting it.
type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"-"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Status      ProjectStatus      `bson:"status" json:"status"`
	Progress    int                `bson:"progress" json:"progress"` // 0-100, derived from tasks

	TeamMemberIDs []primitive.ObjectID `bson:"team_member_ids" json:"team_member_ids"`
	SupervisorID  primitive.ObjectID   `bson:"supervisor_id" json:"supervisor_id"`

	// IdeaID links back to the approved proposal this project was
	// spawned from.
	IdeaID *primitive.ObjectID `bson:"idea_id,omitempty" json:"idea_id,omitempty"`

	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

// HasMember reports whether the user is on the project team.
func (p Project) HasMember(userID primitive.ObjectID) bool {
	for _, id := range p.TeamMemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
