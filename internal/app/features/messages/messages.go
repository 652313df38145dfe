package messages

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	"github.com/dalemusser/capstonehub/internal/app/system/authz"
	"github.com/dalemusser/capstonehub/internal/app/system/inputval"
	"github.com/dalemusser/capstonehub/internal/app/system/sanitize"
	"github.com/dalemusser/capstonehub/internal/app/system/timeouts"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type sendRequest struct {
	RecipientID string `json:"recipient_id" validate:"required" label:"Recipient"`
	Body        string `json:"body" validate:"required,max=10000" label:"Message"`
}

// Send handles POST /api/messages. The recipient gets a notification
// alongside the stored message.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	_, name, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var req sendRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "send message: decode failed", err, "Invalid request body.")
		return
	}
	req.Body = sanitize.Text(req.Body)
	if res := inputval.Validate(req); res.HasErrors() {
		httpjson.Error(w, http.StatusBadRequest, res.First())
		return
	}
	recipientID, err := primitive.ObjectIDFromHex(req.RecipientID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid recipient id.")
		return
	}
	if recipientID == userID {
		httpjson.Error(w, http.StatusBadRequest, "You cannot message yourself.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	recipient, err := h.Users.GetByID(ctx, recipientID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "recipient not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "send message: recipient lookup failed", err, "A database error occurred.")
		return
	}

	msg, err := h.Messages.Create(ctx, models.Message{
		SenderID:    userID,
		RecipientID: recipient.ID,
		Body:        req.Body,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "send message: create failed", err, "Unable to send the message.")
		return
	}

	h.Log.Info("message sent",
		zap.String("message_id", msg.ID.Hex()),
		zap.String("sender_id", userID.Hex()),
		zap.String("recipient_id", recipient.ID.Hex()))

	h.Notify.Send(ctx, recipient.ID, "New message",
		name+" sent you a message.",
		models.NotifyInfo, "message", "/api/messages/with/"+userID.Hex())

	httpjson.Respond(w, http.StatusCreated, msg)
}

// Inbox handles GET /api/messages: messages sent to the signed-in
// user, newest first.
func (h *Handler) Inbox(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Messages.Inbox(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "inbox failed", err, "A database error occurred.")
		return
	}
	if list == nil {
		list = []models.Message{}
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{"messages": list})
}

// UnreadCount handles GET /api/messages/unread-count.
func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	count, err := h.Messages.UnreadCount(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "unread count failed", err, "A database error occurred.")
		return
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{"unread": count})
}

// Conversation handles GET /api/messages/with/{userID}: both
// directions, oldest first. Reading a conversation marks the other
// side's messages read.
func (h *Handler) Conversation(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	otherID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "user not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Messages.MarkConversationRead(ctx, userID, otherID); err != nil {
		h.Log.Warn("mark conversation read failed",
			zap.String("user_id", userID.Hex()),
			zap.Error(err))
	}

	list, err := h.Messages.Conversation(ctx, userID, otherID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "conversation failed", err, "A database error occurred.")
		return
	}
	if list == nil {
		list = []models.Message{}
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{"messages": list})
}

// MarkRead handles POST /api/messages/{id}/read, scoped to the
// recipient.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	msgID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "message not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Messages.MarkRead(ctx, msgID, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "message not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "mark read failed", err, "A database error occurred.")
		return
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{"read": true})
}
