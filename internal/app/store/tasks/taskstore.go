package taskstore

import (
	"context"
	"errors"
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

var (
	// ErrAlreadyGraded guards the submit transition: a graded task
	// cannot accept a new submission.
	ErrAlreadyGraded = errors.New("task has already been graded")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("tasks")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Task, error) {
	var t models.Task
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

func (s *Store) Create(ctx context.Context, t models.Task) (models.Task, error) {
	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	t.Status = models.TaskPending
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	t.CreatedAt = now
	t.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// Submit attaches a submission and moves the task to submitted. The
// write is conditional on the task not being graded, so a concurrent
// grade cannot be overwritten by a late submission.
func (s *Store) Submit(ctx context.Context, id primitive.ObjectID, sub models.Submission) (models.Task, error) {
	now := time.Now().UTC()
	sub.SubmittedAt = now

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$ne": models.TaskGraded}},
		bson.M{"$set": bson.M{
			"status":     models.TaskSubmitted,
			"submission": sub,
			"updated_at": now,
		}},
	)
	if err != nil {
		return models.Task{}, err
	}
	if res.MatchedCount == 0 {
		// Either the task does not exist or it is already graded.
		t, gerr := s.GetByID(ctx, id)
		if gerr != nil {
			return models.Task{}, gerr
		}
		if t.Status == models.TaskGraded {
			return models.Task{}, ErrAlreadyGraded
		}
		return models.Task{}, mongo.ErrNoDocuments
	}
	return s.GetByID(ctx, id)
}

// Grade records a grade and feedback and moves the task to graded.
// Grading is allowed from pending (supervisor-initiated, no submission)
// and from submitted, and an already-graded task may be re-graded.
func (s *Store) Grade(ctx context.Context, id, gradedBy primitive.ObjectID, grade float64, feedback string) (models.Task, error) {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":     models.TaskGraded,
			"grade":      grade,
			"feedback":   feedback,
			"graded_by":  gradedBy,
			"graded_at":  now,
			"updated_at": now,
		}},
	)
	if err != nil {
		return models.Task{}, err
	}
	if res.MatchedCount == 0 {
		return models.Task{}, mongo.ErrNoDocuments
	}
	return s.GetByID(ctx, id)
}

// Delete removes a task. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListByProject returns all tasks for a project, oldest first.
func (s *Store) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"project_id": projectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Task
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
