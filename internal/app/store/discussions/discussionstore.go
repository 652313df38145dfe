package discussionstore

import (
	"context"
	"time"

	"github.com/dalemusser/capstonehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store covers the discussions collection and its companion comments
// collection. Comments live in their own collection so concurrent
// replies never contend on one document.
type Store struct {
	threads  *mongo.Collection
	comments *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		threads:  db.Collection("discussions"),
		comments: db.Collection("discussion_comments"),
	}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Discussion, error) {
	var d models.Discussion
	if err := s.threads.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return models.Discussion{}, err
	}
	return d, nil
}

func (s *Store) Create(ctx context.Context, d models.Discussion) (models.Discussion, error) {
	now := time.Now().UTC()
	d.ID = primitive.NewObjectID()
	d.CreatedAt = now
	d.UpdatedAt = now
	if _, err := s.threads.InsertOne(ctx, d); err != nil {
		return models.Discussion{}, err
	}
	return d, nil
}

// ListByProject returns a project's threads, newest first.
func (s *Store) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Discussion, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.threads.Find(ctx, bson.M{"project_id": projectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Discussion
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddComment appends a reply and bumps the thread's updated_at so
// active threads sort to the top.
func (s *Store) AddComment(ctx context.Context, c models.Comment) (models.Comment, error) {
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.CreatedAt = now
	if _, err := s.comments.InsertOne(ctx, c); err != nil {
		return models.Comment{}, err
	}
	_, err := s.threads.UpdateByID(ctx, c.DiscussionID, bson.M{"$set": bson.M{"updated_at": now}})
	return c, err
}

// ListComments returns a thread's replies, oldest first.
func (s *Store) ListComments(ctx context.Context, discussionID primitive.ObjectID) ([]models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.comments.Find(ctx, bson.M{"discussion_id": discussionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Comment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
