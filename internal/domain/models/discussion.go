package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Discussion is a per-project thread.
type Discussion struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID primitive.ObjectID `bson:"project_id" json:"project_id"`
	Title     string             `bson:"title" json:"title"`
	Body      string             `bson:"body,omitempty" json:"body,omitempty"`

	CreatedBy primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Comment is a reply in a discussion thread. Comments are stored in
// their own collection keyed by discussion_id so replies never race on
// a shared array.
type Comment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DiscussionID primitive.ObjectID `bson:"discussion_id" json:"discussion_id"`
	Body         string             `bson:"body" json:"body"`

	AuthorID   primitive.ObjectID `bson:"author_id" json:"author_id"`
	AuthorName string             `bson:"author_name,omitempty" json:"author_name,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
