package ideas

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	ideastore "github.com/dalemusser/capstonehub/internal/app/store/ideas"
	"github.com/dalemusser/capstonehub/internal/app/system/authz"
	"github.com/dalemusser/capstonehub/internal/app/system/normalize"
	"github.com/dalemusser/capstonehub/internal/app/system/timeouts"
	"github.com/dalemusser/capstonehub/internal/app/system/txn"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type decideRequest struct {
	Approved     bool   `json:"approved"`
	Reason       string `json:"reason"`
	SupervisorID string `json:"supervisor_id"`
}

type decideResponse struct {
	Idea    models.ProjectIdea `json:"idea"`
	Project *models.Project    `json:"project,omitempty"`
}

// Decide handles POST /api/ideas/{id}/decision (coordinator only).
// Approval assigns a supervisor and spawns the active project in the
// same transaction as the status change; rejection requires a reason.
func (h *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	_, _, coordinatorID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	ideaID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "idea not found")
		return
	}

	var req decideRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decide: decode failed", err, "Invalid request body.")
		return
	}
	req.Reason = normalize.Text(req.Reason)

	if !req.Approved && req.Reason == "" {
		httpjson.Error(w, http.StatusBadRequest, "A reason is required when rejecting an idea.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var supervisor models.User
	if req.Approved {
		supervisorID, perr := primitive.ObjectIDFromHex(req.SupervisorID)
		if perr != nil {
			httpjson.Error(w, http.StatusBadRequest, "A supervisor is required when approving an idea.")
			return
		}
		supervisor, err = h.Users.GetByID(ctx, supervisorID)
		if err != nil || supervisor.Role != models.RoleSupervisor {
			httpjson.Error(w, http.StatusBadRequest, "Supervisor not found.")
			return
		}
	}

	var (
		idea    models.ProjectIdea
		project models.Project
	)
	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		var terr error
		idea, terr = h.Ideas.Decide(ctx, ideaID, coordinatorID, req.Approved, req.Reason)
		if terr != nil {
			return terr
		}
		if !req.Approved {
			return nil
		}

		memberIDs := make([]primitive.ObjectID, 0, len(idea.TeamMembers))
		for _, m := range idea.TeamMembers {
			if m.UserID != nil {
				memberIDs = append(memberIDs, *m.UserID)
			}
		}
		project, terr = h.Projects.Create(ctx, models.Project{
			Title:         idea.Title,
			Description:   idea.ProblemStatement,
			Status:        models.ProjectActive,
			TeamMemberIDs: memberIDs,
			SupervisorID:  supervisor.ID,
			IdeaID:        &idea.ID,
		})
		return terr
	})
	if err != nil {
		switch {
		case errors.Is(err, ideastore.ErrAlreadyDecided):
			httpjson.Error(w, http.StatusConflict, "This idea has already been decided.")
		case errors.Is(err, ideastore.ErrNotReady):
			httpjson.Error(w, http.StatusConflict, "This idea is still waiting for team approval.")
		case errors.Is(err, mongo.ErrNoDocuments):
			httpjson.Error(w, http.StatusNotFound, "idea not found")
		default:
			h.ErrLog.LogServerError(w, r, "decide failed", err, "A database error occurred.")
		}
		return
	}

	resp := decideResponse{Idea: idea}
	if req.Approved {
		resp.Project = &project
		h.Log.Info("idea approved",
			zap.String("idea_id", idea.ID.Hex()),
			zap.String("project_id", project.ID.Hex()),
			zap.String("supervisor_id", supervisor.ID.Hex()))

		h.Notify.SendAll(ctx, project.TeamMemberIDs,
			"Idea approved",
			"\""+idea.Title+"\" was approved. Your project is now active.",
			models.NotifySuccess, "idea", "/api/projects/"+project.ID.Hex())
		h.Notify.Send(ctx, supervisor.ID,
			"New project assigned",
			"You are supervising \""+project.Title+"\".",
			models.NotifyInfo, "idea", "/api/projects/"+project.ID.Hex())
	} else {
		h.Log.Info("idea rejected", zap.String("idea_id", idea.ID.Hex()))
		for _, m := range idea.TeamMembers {
			if m.UserID != nil {
				h.Notify.Send(ctx, *m.UserID,
					"Idea rejected",
					"\""+idea.Title+"\" was rejected: "+req.Reason,
					models.NotifyError, "idea", "/api/ideas/"+idea.ID.Hex())
			}
		}
	}

	httpjson.Respond(w, http.StatusOK, resp)
}
