package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskSubmitted TaskStatus = "submitted"
	TaskGraded    TaskStatus = "graded"
)

// TaskPriority orders tasks for display. It is derived from the due
// date and status at read time; the stored value is only the authoring
// default for tasks without a due date.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Submission is what a student attached when submitting a task.
type Submission struct {
	Text        string             `bson:"text,omitempty" json:"text,omitempty"`
	FileURLs    []string           `bson:"file_urls,omitempty" json:"file_urls,omitempty"`
	SubmittedBy primitive.ObjectID `bson:"submitted_by" json:"submitted_by"`
	SubmittedAt time.Time          `bson:"submitted_at" json:"submitted_at"`
}

// Task is one unit of work assigned within a project. Weight is the
// percentage of the project grade this task is worth; weights across a
// project's tasks are intended to sum to 100 but that is advisory, not
// enforced at write time.
//
// Invariant: Grade is set if and only if Status == TaskGraded, and
// 0 <= *Grade <= MaxGrade when set.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID   primitive.ObjectID `bson:"project_id" json:"project_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Status      TaskStatus         `bson:"status" json:"status"`
	Priority    TaskPriority       `bson:"priority,omitempty" json:"priority,omitempty"`

	Weight   float64  `bson:"weight" json:"weight"`
	MaxGrade float64  `bson:"max_grade" json:"max_grade"`
	Grade    *float64 `bson:"grade,omitempty" json:"grade,omitempty"`
	Feedback string   `bson:"feedback,omitempty" json:"feedback,omitempty"`

	DueDate    *time.Time         `bson:"due_date,omitempty" json:"due_date,omitempty"`
	Submission *Submission        `bson:"submission,omitempty" json:"submission,omitempty"`
	GradedBy   *primitive.ObjectID `bson:"graded_by,omitempty" json:"graded_by,omitempty"`
	GradedAt   *time.Time         `bson:"graded_at,omitempty" json:"graded_at,omitempty"`

	CreatedBy primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
