package ideas

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	"github.com/dalemusser/capstonehub/internal/app/system/authz"
	"github.com/dalemusser/capstonehub/internal/app/system/inputval"
	"github.com/dalemusser/capstonehub/internal/app/system/normalize"
	"github.com/dalemusser/capstonehub/internal/app/system/timeouts"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"go.uber.org/zap"
)

type proposeRequest struct {
	Title            string   `json:"title" validate:"required,max=200" label:"Title"`
	ProblemStatement string   `json:"problem_statement" validate:"required,max=5000" label:"Problem statement"`
	TeamMemberEmails []string `json:"team_member_emails" validate:"max=9,dive,email" label:"Team member emails"`
}

// Propose handles POST /api/ideas. The proposer becomes the
// pre-approved team leader; the listed emails become unapproved
// invitees. A student with an idea still in flight, or on an active
// project, cannot propose again.
func (h *Handler) Propose(w http.ResponseWriter, r *http.Request) {
	_, name, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}
	email := normalize.Email(authz.UserEmail(r))

	var req proposeRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "propose: decode failed", err, "Invalid request body.")
		return
	}
	req.Title = normalize.Text(req.Title)
	req.ProblemStatement = normalize.Text(req.ProblemStatement)
	if res := inputval.Validate(req); res.HasErrors() {
		httpjson.Error(w, http.StatusBadRequest, res.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// Resubmission guard: one open idea or active project per student.
	open, err := h.Ideas.HasOpenForEmail(ctx, email)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "propose: resubmission check failed", err, "A database error occurred.")
		return
	}
	if !open {
		open, err = h.Projects.HasActiveForMember(ctx, userID)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "propose: project check failed", err, "A database error occurred.")
			return
		}
	}
	if open {
		httpjson.Error(w, http.StatusConflict,
			"You already have a project idea in progress or an active project.")
		return
	}

	now := time.Now().UTC()
	members := []models.IdeaTeamMember{{
		Email:      email,
		Role:       models.TeamLeader,
		Approved:   true,
		UserID:     &userID,
		FullName:   name,
		ApprovedAt: &now,
	}}
	seen := map[string]bool{email: true}
	for _, invitee := range req.TeamMemberEmails {
		invitee = normalize.Email(invitee)
		if invitee == "" || seen[invitee] {
			continue
		}
		seen[invitee] = true
		members = append(members, models.IdeaTeamMember{
			Email: invitee,
			Role:  models.TeamMember,
		})
	}

	idea, err := h.Ideas.Create(ctx, models.ProjectIdea{
		Title:            req.Title,
		ProblemStatement: req.ProblemStatement,
		TeamMembers:      members,
		ProposedBy:       userID,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "propose: create failed", err, "Unable to save the idea.")
		return
	}

	h.Log.Info("idea proposed",
		zap.String("idea_id", idea.ID.Hex()),
		zap.String("proposed_by", userID.Hex()),
		zap.Int("team_size", len(members)))

	httpjson.Respond(w, http.StatusCreated, idea)
}
