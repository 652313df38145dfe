package ideastore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/capstonehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrMemberNotFound  = errors.New("no pending invite for this email on the idea")
	ErrAlreadyDecided  = errors.New("idea has already been decided")
	ErrNotReady        = errors.New("idea is not awaiting coordinator review")
	ErrAlreadyApproved = errors.New("member has already approved")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("project_ideas")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.ProjectIdea, error) {
	var i models.ProjectIdea
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&i); err != nil {
		return models.ProjectIdea{}, err
	}
	return i, nil
}

// Create inserts a new proposal. TeamStatus starts at pending_approval
// when the team has at least two members, pending_formation otherwise,
// and Status always starts at pending_team_approval.
func (s *Store) Create(ctx context.Context, idea models.ProjectIdea) (models.ProjectIdea, error) {
	now := time.Now().UTC()
	idea.ID = primitive.NewObjectID()
	idea.TitleCI = text.Fold(idea.Title)
	if len(idea.TeamMembers) >= 2 {
		idea.TeamStatus = models.TeamPendingApproval
	} else {
		idea.TeamStatus = models.TeamPendingFormation
	}
	idea.Status = models.IdeaPendingTeamApproval
	idea.CreatedAt = now
	idea.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, idea); err != nil {
		return models.ProjectIdea{}, err
	}
	return idea, nil
}

// ApproveMember flips one invitee's approved flag and enriches the slot
// with the approver's identity. The write targets a single array
// element through an array filter, so two members approving at the same
// time touch disjoint fields and neither update is lost. When the last
// member approves, the idea advances to pending and becomes visible to
// coordinators.
//
// Callers should run this inside txn.Run so the per-member update and
// the all-approved recompute commit together.
func (s *Store) ApproveMember(ctx context.Context, id primitive.ObjectID, email string, userID primitive.ObjectID, fullName string) (models.ProjectIdea, error) {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.IdeaPendingTeamApproval},
		bson.M{"$set": bson.M{
			"team_members.$[m].approved":    true,
			"team_members.$[m].user_id":     userID,
			"team_members.$[m].full_name":   fullName,
			"team_members.$[m].approved_at": now,
			"updated_at":                    now,
		}},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.M{"m.email": email, "m.approved": false}},
		}),
	)
	if err != nil {
		return models.ProjectIdea{}, err
	}
	if res.MatchedCount == 0 {
		return models.ProjectIdea{}, ErrMemberNotFound
	}
	if res.ModifiedCount == 0 {
		// Matched the idea but no array element: either the email is
		// not invited or that member already approved.
		idea, gerr := s.GetByID(ctx, id)
		if gerr != nil {
			return models.ProjectIdea{}, gerr
		}
		for _, m := range idea.TeamMembers {
			if m.Email == email && m.Approved {
				return models.ProjectIdea{}, ErrAlreadyApproved
			}
		}
		return models.ProjectIdea{}, ErrMemberNotFound
	}

	idea, err := s.GetByID(ctx, id)
	if err != nil {
		return models.ProjectIdea{}, err
	}

	if idea.AllApproved() && idea.Status == models.IdeaPendingTeamApproval {
		_, err = s.c.UpdateOne(ctx,
			bson.M{"_id": id, "status": models.IdeaPendingTeamApproval},
			bson.M{"$set": bson.M{
				"team_status": models.TeamAllApproved,
				"status":      models.IdeaPending,
				"updated_at":  now,
			}},
		)
		if err != nil {
			return models.ProjectIdea{}, err
		}
		idea.TeamStatus = models.TeamAllApproved
		idea.Status = models.IdeaPending
	}
	return idea, nil
}

// RemoveMember takes an invitee off the team (a rejection of the
// invite). If fewer than two members remain, team assembly drops back
// to pending_formation.
func (s *Store) RemoveMember(ctx context.Context, id primitive.ObjectID, email string) (models.ProjectIdea, error) {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.IdeaPendingTeamApproval},
		bson.M{
			"$pull": bson.M{"team_members": bson.M{"email": email}},
			"$set":  bson.M{"updated_at": now},
		},
	)
	if err != nil {
		return models.ProjectIdea{}, err
	}
	if res.MatchedCount == 0 {
		return models.ProjectIdea{}, ErrMemberNotFound
	}
	if res.ModifiedCount == 0 {
		return models.ProjectIdea{}, ErrMemberNotFound
	}

	idea, err := s.GetByID(ctx, id)
	if err != nil {
		return models.ProjectIdea{}, err
	}

	want := models.TeamPendingApproval
	if len(idea.TeamMembers) < 2 {
		want = models.TeamPendingFormation
	}
	if idea.TeamStatus != want {
		if _, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
			"team_status": want,
			"updated_at":  now,
		}}); err != nil {
			return models.ProjectIdea{}, err
		}
		idea.TeamStatus = want
	}
	return idea, nil
}

// Decide records the coordinator's decision. Only ideas in pending may
// be decided, and only once.
func (s *Store) Decide(ctx context.Context, id, decidedBy primitive.ObjectID, approved bool, reason string) (models.ProjectIdea, error) {
	now := time.Now().UTC()
	status := models.IdeaApproved
	if !approved {
		status = models.IdeaRejected
	}
	set := bson.M{
		"status":     status,
		"decided_by": decidedBy,
		"decided_at": now,
		"updated_at": now,
	}
	if reason != "" {
		set["rejection_reason"] = reason
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.IdeaPending},
		bson.M{"$set": set},
	)
	if err != nil {
		return models.ProjectIdea{}, err
	}
	if res.MatchedCount == 0 {
		idea, gerr := s.GetByID(ctx, id)
		if gerr != nil {
			return models.ProjectIdea{}, gerr
		}
		if idea.Status == models.IdeaApproved || idea.Status == models.IdeaRejected {
			return models.ProjectIdea{}, ErrAlreadyDecided
		}
		return models.ProjectIdea{}, ErrNotReady
	}
	return s.GetByID(ctx, id)
}

// ListForEmail returns ideas where the email is on the team, newest
// first.
func (s *Store) ListForEmail(ctx context.Context, email string) ([]models.ProjectIdea, error) {
	return s.list(ctx, bson.M{"team_members.email": email})
}

// ListByStatus returns ideas in the given review state.
func (s *Store) ListByStatus(ctx context.Context, status models.IdeaStatus) ([]models.ProjectIdea, error) {
	return s.list(ctx, bson.M{"status": status})
}

// HasOpenForEmail reports whether the email appears on any idea that is
// still in flight (pending team approval, pending review, or already
// approved). The resubmission rule allows a new proposal only when this
// is false and the student has no active project.
func (s *Store) HasOpenForEmail(ctx context.Context, email string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{
		"team_members.email": email,
		"status": bson.M{"$in": []models.IdeaStatus{
			models.IdeaPendingTeamApproval,
			models.IdeaPending,
			models.IdeaApproved,
		}},
	})
	return n > 0, err
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.ProjectIdea, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ProjectIdea
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
