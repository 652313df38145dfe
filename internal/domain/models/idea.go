package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamStatus tracks how far along team assembly is.
type TeamStatus string

const (
	TeamPendingFormation TeamStatus = "pending_formation"
	TeamPendingApproval  TeamStatus = "pending_approval"
	TeamAllApproved      TeamStatus = "all_approved"
)

// IdeaStatus is the review state of a project idea.
type IdeaStatus string

const (
	IdeaPendingTeamApproval IdeaStatus = "pending_team_approval"
	IdeaPending             IdeaStatus = "pending"
	IdeaApproved            IdeaStatus = "approved"
	IdeaRejected            IdeaStatus = "rejected"
)

// TeamMemberRole distinguishes the proposing leader from invitees.
type TeamMemberRole string

const (
	TeamLeader TeamMemberRole = "leader"
	TeamMember TeamMemberRole = "member"
)

// IdeaTeamMember is one slot on a proposed team. Invites are created
// with just an email; UserID and FullName are filled in when that
// student approves.
type IdeaTeamMember struct {
	Email      string              `bson:"email" json:"email"`
	Role       TeamMemberRole      `bson:"role" json:"role"`
	Approved   bool                `bson:"approved" json:"approved"`
	UserID     *primitive.ObjectID `bson:"user_id,omitempty" json:"user_id,omitempty"`
	FullName   string              `bson:"full_name,omitempty" json:"full_name,omitempty"`
	ApprovedAt *time.Time          `bson:"approved_at,omitempty" json:"approved_at,omitempty"`
}

// ProjectIdea is a pre-project proposal: a team is assembled and every
// invited member approves before coordinators review it.
//
// Invariant: TeamStatus == TeamAllApproved iff every entry in
// TeamMembers has Approved == true, and Status only leaves
// IdeaPendingTeamApproval once that holds.
type ProjectIdea struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title            string             `bson:"title" json:"title"`
	TitleCI          string             `bson:"title_ci" json:"-"`
	ProblemStatement string             `bson:"problem_statement" json:"problem_statement"`

	TeamMembers []IdeaTeamMember `bson:"team_members" json:"team_members"`
	TeamStatus  TeamStatus       `bson:"team_status" json:"team_status"`
	Status      IdeaStatus       `bson:"status" json:"status"`

	ProposedBy      primitive.ObjectID  `bson:"proposed_by" json:"proposed_by"`
	DecidedBy       *primitive.ObjectID `bson:"decided_by,omitempty" json:"decided_by,omitempty"`
	RejectionReason string              `bson:"rejection_reason,omitempty" json:"rejection_reason,omitempty"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DecidedAt *time.Time `bson:"decided_at,omitempty" json:"decided_at,omitempty"`
}

// AllApproved reports whether every team member has approved.
func (i ProjectIdea) AllApproved() bool {
	for _, m := range i.TeamMembers {
		if !m.Approved {
			return false
		}
	}
	return len(i.TeamMembers) > 0
}
