package notifications_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	"github.com/dalemusser/capstonehub/internal/app/features/notifications"
	notificationstore "github.com/dalemusser/capstonehub/internal/app/store/notifications"
	"github.com/dalemusser/capstonehub/internal/app/system/auth"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"github.com/dalemusser/capstonehub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*notifications.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	return notifications.NewHandler(db, httpjson.NewErrorLogger(logger), logger), db
}

func asUser(req *http.Request, u models.User) *http.Request {
	return auth.WithTestUser(req, &auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Role:  string(u.Role),
	})
}

func TestListAndUnreadCount_OwnOnly(t *testing.T) {
	h, db := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateStudent(ctx, "Alice", "alice@example.com")
	bob := fixtures.CreateStudent(ctx, "Bob", "bob@example.com")

	store := notificationstore.New(db)
	for _, title := range []string{"One", "Two"} {
		if _, err := store.Create(ctx, models.Notification{
			UserID:  alice.ID,
			Title:   title,
			Message: "body",
		}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	if _, err := store.Create(ctx, models.Notification{
		UserID:  bob.ID,
		Title:   "Bob's",
		Message: "body",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	req := asUser(httptest.NewRequest("GET", "/api/notifications", nil), alice)
	rec := httptest.NewRecorder()
	h.List(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}

	var resp struct {
		Notifications []models.Notification `json:"notifications"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.Notifications) != 2 {
		t.Errorf("alice's notifications: got %d, want 2", len(resp.Notifications))
	}

	countReq := asUser(httptest.NewRequest("GET", "/api/notifications/unread-count", nil), alice)
	countRec := httptest.NewRecorder()
	h.UnreadCount(countRec, countReq)
	if countRec.Code != http.StatusOK {
		t.Fatalf("unread count: expected 200, got %d", countRec.Code)
	}
	var count struct {
		Unread int64 `json:"unread"`
	}
	if err := json.Unmarshal(countRec.Body.Bytes(), &count); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if count.Unread != 2 {
		t.Errorf("unread: got %d, want 2", count.Unread)
	}
}

func TestMarkRead_OwnerScoped(t *testing.T) {
	h, db := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateStudent(ctx, "Alice", "alice@example.com")
	bob := fixtures.CreateStudent(ctx, "Bob", "bob@example.com")

	store := notificationstore.New(db)
	note, err := store.Create(ctx, models.Notification{
		UserID:  alice.ID,
		Title:   "For Alice",
		Message: "body",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	markAs := func(u models.User) *httptest.ResponseRecorder {
		req := asUser(httptest.NewRequest("POST", "/api/notifications/"+note.ID.Hex()+"/read", nil), u)
		req = testutil.WithChiURLParam(req, "id", note.ID.Hex())
		rec := httptest.NewRecorder()
		h.MarkRead(rec, req)
		return rec
	}

	if rec := markAs(bob); rec.Code != http.StatusNotFound {
		t.Errorf("other user's mark read: expected 404, got %d", rec.Code)
	}
	if rec := markAs(alice); rec.Code != http.StatusOK {
		t.Errorf("owner mark read: expected 200, got %d", rec.Code)
	}

	unread, err := store.UnreadCount(ctx, alice.ID)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if unread != 0 {
		t.Errorf("unread after mark read: got %d, want 0", unread)
	}
}

func TestMarkAllRead(t *testing.T) {
	h, db := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateStudent(ctx, "Alice", "alice@example.com")

	store := notificationstore.New(db)
	for _, title := range []string{"One", "Two", "Three"} {
		if _, err := store.Create(ctx, models.Notification{
			UserID:  alice.ID,
			Title:   title,
			Message: "body",
		}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	req := asUser(httptest.NewRequest("POST", "/api/notifications/read-all", nil), alice)
	rec := httptest.NewRecorder()
	h.MarkAllRead(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp struct {
		Updated int64 `json:"updated"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Updated != 3 {
		t.Errorf("updated: got %d, want 3", resp.Updated)
	}
}
