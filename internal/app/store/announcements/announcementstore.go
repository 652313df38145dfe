package announcementstore

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
	return &Store{c: db.Collection("announcements")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Announcement, error) {
	var a models.Announcement
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return models.Announcement{}, err
	}
	return a, nil
}

func (s *Store) Create(ctx context.Context, a models.Announcement) (models.Announcement, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	if a.Type == "" {
		a.Type = models.AnnouncementInfo
	}
	a.CreatedAt = now
	a.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Announcement{}, err
	}
	return a, nil
}

// Update replaces the mutable fields of an announcement.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, a models.Announcement) error {
	set := bson.M{
		"title":      a.Title,
		"content":    a.Content,
		"type":       a.Type,
		"active":     a.Active,
		"updated_at": time.Now().UTC(),
	}
	unset := bson.M{}
	if a.StartsAt != nil {
		set["starts_at"] = a.StartsAt
	} else {
		unset["starts_at"] = ""
	}
	if a.EndsAt != nil {
		set["ends_at"] = a.EndsAt
	} else {
		unset["ends_at"] = ""
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	res, err := s.c.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *Store) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"active":     active,
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

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// List returns every announcement, newest first (coordinator view).
func (s *Store) List(ctx context.Context) ([]models.Announcement, error) {
	return s.list(ctx, bson.M{})
}

// ListVisible returns announcements that should be shown at t, newest
// first. The time-window filter is applied in memory because the window
// fields are optional.
func (s *Store) ListVisible(ctx context.Context, t time.Time) ([]models.Announcement, error) {
	all, err := s.list(ctx, bson.M{"active": true})
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, a := range all {
		if a.VisibleAt(t) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Announcement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Announcement
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
