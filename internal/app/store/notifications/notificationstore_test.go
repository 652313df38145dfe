package notificationstore_test

import (
	"errors"
	"testing"

	notificationstore "github.com/dalemusser/capstonehub/internal/app/store/notifications"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"github.com/dalemusser/capstonehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestUnreadCountAndMarkRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()

	first, err := store.Create(ctx, models.Notification{UserID: userID, Title: "Task graded", Message: "85/100"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Notification{UserID: userID, Title: "Meeting scheduled", Message: "Friday"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Notification{UserID: otherID, Title: "Not yours", Message: "x"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	n, err := store.UnreadCount(ctx, userID)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if n != 2 {
		t.Errorf("unread: got %d, want 2", n)
	}

	if err := store.MarkRead(ctx, first.ID, userID); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	n, _ = store.UnreadCount(ctx, userID)
	if n != 1 {
		t.Errorf("unread after MarkRead: got %d, want 1", n)
	}
}

func TestMarkRead_WrongOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	n, err := store.Create(ctx, models.Notification{UserID: owner, Title: "Private", Message: "x"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = store.MarkRead(ctx, n.ID, primitive.NewObjectID())
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("err = %v, want ErrNoDocuments", err)
	}
}

func TestMarkAllRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	for i := 0; i < 3; i++ {
		if _, err := store.Create(ctx, models.Notification{UserID: userID, Title: "n", Message: "m"}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	updated, err := store.MarkAllRead(ctx, userID)
	if err != nil {
		t.Fatalf("MarkAllRead failed: %v", err)
	}
	if updated != 3 {
		t.Errorf("updated: got %d, want 3", updated)
	}

	n, _ := store.UnreadCount(ctx, userID)
	if n != 0 {
		t.Errorf("unread after MarkAllRead: got %d, want 0", n)
	}
}

func TestListForUser_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	if _, err := store.Create(ctx, models.Notification{UserID: userID, Title: "older", Message: "m"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Notification{UserID: userID, Title: "newer", Message: "m"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	list, err := store.ListForUser(ctx, userID, 0)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d notifications, want 2", len(list))
	}
	if list[0].Title != "newer" {
		t.Errorf("order: got %q first, want %q", list[0].Title, "newer")
	}
}
