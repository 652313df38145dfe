// Package notify writes in-app notifications. Delivery is best effort:
// a failed write is logged and swallowed so it never rolls back the
// state change that triggered it.
package notify

import (
	"context"

	notificationstore "github.com/dalemusser/capstonehub/internal/app/store/notifications"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Notifier struct {
	store *notificationstore.Store
	log   *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Notifier {
	return &Notifier{
		store: notificationstore.New(db),
		log:   logger,
	}
}

// Send writes one notification for the user.
func (n *Notifier) Send(ctx context.Context, userID primitive.ObjectID, title, message string, typ models.NotificationType, category, link string) {
	_, err := n.store.Create(ctx, models.Notification{
		UserID:   userID,
		Title:    title,
		Message:  message,
		Type:     typ,
		Category: category,
		Link:     link,
	})
	if err != nil {
		n.log.Warn("notification write failed",
			zap.String("user_id", userID.Hex()),
			zap.String("title", title),
			zap.Error(err))
	}
}

// SendAll fans one notification out to several users.
func (n *Notifier) SendAll(ctx context.Context, userIDs []primitive.ObjectID, title, message string, typ models.NotificationType, category, link string) {
	for _, id := range userIDs {
		n.Send(ctx, id, title, message, typ, category, link)
	}
}
