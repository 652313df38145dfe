package meetings

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	"github.com/dalemusser/capstonehub/internal/app/system/authz"
	"github.com/dalemusser/capstonehub/internal/app/system/inputval"
	"github.com/dalemusser/capstonehub/internal/app/system/normalize"
	"github.com/dalemusser/capstonehub/internal/app/system/timeouts"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type scheduleRequest struct {
	ProjectID   string    `json:"project_id" validate:"required" label:"Project"`
	Title       string    `json:"title" validate:"required,max=200" label:"Title"`
	Agenda      string    `json:"agenda" validate:"max=5000" label:"Agenda"`
	Link        string    `json:"link" validate:"omitempty,url,max=2048" label:"Meeting link"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required" label:"Scheduled time"`
}

// Schedule handles POST /api/meetings (supervisor). The team is
// notified of the new meeting.
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var req scheduleRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "schedule meeting: decode failed", err, "Invalid request body.")
		return
	}
	req.Title = normalize.Text(req.Title)
	req.Agenda = normalize.Text(req.Agenda)
	if res := inputval.Validate(req); res.HasErrors() {
		httpjson.Error(w, http.StatusBadRequest, res.First())
		return
	}
	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid project id.")
		return
	}
	if req.ScheduledAt.Before(time.Now().UTC()) {
		httpjson.Error(w, http.StatusBadRequest, "Scheduled time must be in the future.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	project, err := h.Projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "project not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "schedule meeting: project lookup failed", err, "A database error occurred.")
		return
	}
	if project.SupervisorID != userID {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	meeting, err := h.Meetings.Create(ctx, models.Meeting{
		ProjectID:   project.ID,
		Title:       req.Title,
		Agenda:      req.Agenda,
		Link:        req.Link,
		ScheduledAt: req.ScheduledAt.UTC(),
		CreatedBy:   userID,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "schedule meeting: create failed", err, "Unable to save the meeting.")
		return
	}

	h.Log.Info("meeting scheduled",
		zap.String("meeting_id", meeting.ID.Hex()),
		zap.String("project_id", project.ID.Hex()),
		zap.Time("scheduled_at", meeting.ScheduledAt))

	h.Notify.SendAll(ctx, project.TeamMemberIDs, "Meeting scheduled",
		"\""+meeting.Title+"\" on "+meeting.ScheduledAt.Format("Jan 2, 2006 at 15:04")+" UTC.",
		models.NotifyInfo, "meeting", "/api/projects/"+project.ID.Hex()+"/meetings")

	httpjson.Respond(w, http.StatusCreated, meeting)
}

// Cancel handles POST /api/meetings/{id}/cancel (the scheduling
// supervisor). Cancelling an already cancelled or held meeting
// conflicts.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	meetingID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "meeting not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	meeting, err := h.Meetings.GetByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "meeting not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "cancel meeting: lookup failed", err, "A database error occurred.")
		return
	}

	project, err := h.Projects.GetByID(ctx, meeting.ProjectID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "cancel meeting: project lookup failed", err, "A database error occurred.")
		return
	}
	if project.SupervisorID != userID {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}
	if meeting.Status != models.MeetingScheduled {
		httpjson.Error(w, http.StatusConflict, "Only scheduled meetings can be cancelled.")
		return
	}

	if err := h.Meetings.SetStatus(ctx, meeting.ID, models.MeetingCancelled); err != nil {
		h.ErrLog.LogServerError(w, r, "cancel meeting: update failed", err, "A database error occurred.")
		return
	}

	h.Log.Info("meeting cancelled",
		zap.String("meeting_id", meeting.ID.Hex()),
		zap.String("project_id", project.ID.Hex()))

	h.Notify.SendAll(ctx, project.TeamMemberIDs, "Meeting cancelled",
		"\""+meeting.Title+"\" has been cancelled.",
		models.NotifyWarning, "meeting", "/api/projects/"+project.ID.Hex()+"/meetings")

	meeting.Status = models.MeetingCancelled
	httpjson.Respond(w, http.StatusOK, meeting)
}
