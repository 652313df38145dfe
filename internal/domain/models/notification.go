package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType buckets notifications for filtering in clients.
type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
	NotifyError   NotificationType = "error"
)

// Notification is a best-effort, fire-and-forget record: a failure to
// write one never rolls back the state change that triggered it.
type Notification struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	Title    string             `bson:"title" json:"title"`
	Message  string             `bson:"message" json:"message"`
	Type     NotificationType   `bson:"type" json:"type"`
	Link     string             `bson:"link,omitempty" json:"link,omitempty"`
	Priority string             `bson:"priority,omitempty" json:"priority,omitempty"` // low | normal | high
	Category string             `bson:"category,omitempty" json:"category,omitempty"` // task | idea | meeting | message | system
	Read     bool               `bson:"read" json:"read"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	ReadAt    *time.Time `bson:"read_at,omitempty" json:"read_at,omitempty"`
}
