package projectstore

import (
	"context"
	"time"

	"github.com/dalemusser/capstonehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("projects")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.TitleCI = text.Fold(p.Title)
	if p.Status == "" {
		p.Status = models.ProjectActive
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// SetProgress persists the derived progress hint after a task mutation.
func (s *Store) SetProgress(ctx context.Context, id primitive.ObjectID, progress int) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"progress":   progress,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// SetStatus moves a project between lifecycle states. CompletedAt is
// stamped when entering completed and cleared when leaving it.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status models.ProjectStatus) error {
	now := time.Now().UTC()
	set := bson.M{"status": status, "updated_at": now}
	unset := bson.M{}
	if status == models.ProjectCompleted {
		set["completed_at"] = now
	} else {
		unset["completed_at"] = ""
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	_, err := s.c.UpdateByID(ctx, id, update)
	return err
}

// ListForMember returns projects the user belongs to as a student.
func (s *Store) ListForMember(ctx context.Context, userID primitive.ObjectID) ([]models.Project, error) {
	return s.list(ctx, bson.M{"team_member_ids": userID})
}

// ListForSupervisor returns projects the supervisor oversees.
func (s *Store) ListForSupervisor(ctx context.Context, supervisorID primitive.ObjectID) ([]models.Project, error) {
	return s.list(ctx, bson.M{"supervisor_id": supervisorID})
}

// ListAll returns every project, newest first (coordinator view).
func (s *Store) ListAll(ctx context.Context) ([]models.Project, error) {
	return s.list(ctx, bson.M{})
}

// HasActiveForMember reports whether the user is on any project that is
// not rejected or archived. Used by the idea resubmission guard.
func (s *Store) HasActiveForMember(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{
		"team_member_ids": userID,
		"status":          bson.M{"$in": []models.ProjectStatus{models.ProjectActive, models.ProjectCompleted}},
	})
	return n > 0, err
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Project, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Project
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
