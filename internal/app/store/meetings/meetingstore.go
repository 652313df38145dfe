package meetingstore

import (
	"context"
	"time"

	"github.com/dalemusser/capstonehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("meetings")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Meeting, error) {
	var m models.Meeting
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return models.Meeting{}, err
	}
	return m, nil
}

func (s *Store) Create(ctx context.Context, m models.Meeting) (models.Meeting, error) {
	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	m.Status = models.MeetingScheduled
	m.CreatedAt = now
	m.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Meeting{}, err
	}
	return m, nil
}

// SetStatus moves a meeting to cancelled or held.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status models.MeetingStatus) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListByProject returns a project's meetings, soonest first.
func (s *Store) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Meeting, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"project_id": projectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Meeting
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListUpcomingByProject returns scheduled meetings at or after now.
func (s *Store) ListUpcomingByProject(ctx context.Context, projectID primitive.ObjectID, now time.Time) ([]models.Meeting, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{
		"project_id":   projectID,
		"status":       models.MeetingScheduled,
		"scheduled_at": bson.M{"$gte": now},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Meeting
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
