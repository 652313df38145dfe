package ideas_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	"github.com/dalemusser/capstonehub/internal/app/features/ideas"
	ideastore "github.com/dalemusser/capstonehub/internal/app/store/ideas"
	projectstore "github.com/dalemusser/capstonehub/internal/app/store/projects"
	"github.com/dalemusser/capstonehub/internal/app/system/auth"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"github.com/dalemusser/capstonehub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*ideas.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	return ideas.NewHandler(db, httpjson.NewErrorLogger(logger), logger), db
}

func asUser(req *http.Request, u models.User) *http.Request {
	return auth.WithTestUser(req, &auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Role:  string(u.Role),
	})
}

func TestPropose_Success(t *testing.T) {
	h, db := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	leader := fixtures.CreateStudent(ctx, "Leader", "leader@example.com")

	body := `{"title":"Smart Campus","problem_statement":"Parking is chaos.","team_member_emails":["mate@example.com"]}`
	req := asUser(httptest.NewRequest("POST", "/api/ideas", strings.NewReader(body)), leader)
	rec := httptest.NewRecorder()

	h.Propose(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var idea models.ProjectIdea
	if err := json.Unmarshal(rec.Body.Bytes(), &idea); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if idea.Status != models.IdeaPendingTeamApproval {
		t.Errorf("status: got %q, want %q", idea.Status, models.IdeaPendingTeamApproval)
	}
	if idea.TeamStatus != models.TeamPendingApproval {
		t.Errorf("team status: got %q, want %q", idea.TeamStatus, models.TeamPendingApproval)
	}
	if len(idea.TeamMembers) != 2 {
		t.Fatalf("got %d members, want 2", len(idea.TeamMembers))
	}
	if !idea.TeamMembers[0].Approved || idea.TeamMembers[0].Role != models.TeamLeader {
		t.Error("leader should be pre-approved")
	}
	if idea.TeamMembers[1].Approved {
		t.Error("invitee should start unapproved")
	}
}

func TestPropose_ResubmissionGuard(t *testing.T) {
	h, db := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	leader := fixtures.CreateStudent(ctx, "Leader", "leader@example.com")
	fixtures.CreateIdea(ctx, "First Idea", leader.ID, "leader@example.com", "mate@example.com")

	body := `{"title":"Second Idea","problem_statement":"Another one."}`
	req := asUser(httptest.NewRequest("POST", "/api/ideas", strings.NewReader(body)), leader)
	rec := httptest.NewRecorder()

	h.Propose(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, rec.Code)
	}
}

func TestPropose_ActiveProjectBlocks(t *testing.T) {
	h, db := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fixtures.CreateStudent(ctx, "Busy Student", "busy@example.com")
	supervisor := fixtures.CreateSupervisor(ctx, "Supervisor", "supervisor@example.com")
	fixtures.CreateProject(ctx, "Running Project", supervisor.ID, student.ID)

	body := `{"title":"New Idea","problem_statement":"More work."}`
	req := asUser(httptest.NewRequest("POST", "/api/ideas", strings.NewReader(body)), student)
	rec := httptest.NewRecorder()

	h.Propose(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, rec.Code)
	}
}

func TestApproveMember_AdvancesIdea(t *testing.T) {
	h, db := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	leader := fixtures.CreateStudent(ctx, "Leader", "leader@example.com")
	mate := fixtures.CreateStudent(ctx, "Mate", "mate@example.com")
	fixtures.CreateCoordinator(ctx, "Coordinator", "coordinator@example.com")
	idea := fixtures.CreateIdea(ctx, "Pair Idea", leader.ID, "leader@example.com", "mate@example.com")

	req := asUser(httptest.NewRequest("POST", fmt.Sprintf("/api/ideas/%s/approve", idea.ID.Hex()), nil), mate)
	req = testutil.WithChiURLParam(req, "id", idea.ID.Hex())
	rec := httptest.NewRecorder()

	h.ApproveMember(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var updated models.ProjectIdea
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if updated.Status != models.IdeaPending {
		t.Errorf("status: got %q, want %q", updated.Status, models.IdeaPending)
	}
}

func TestApproveMember_NotInvited(t *testing.T) {
	h, db := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	leader := fixtures.CreateStudent(ctx, "Leader", "leader@example.com")
	stranger := fixtures.CreateStudent(ctx, "Stranger", "stranger@example.com")
	idea := fixtures.CreateIdea(ctx, "Pair Idea", leader.ID, "leader@example.com", "mate@example.com")

	req := asUser(httptest.NewRequest("POST", fmt.Sprintf("/api/ideas/%s/approve", idea.ID.Hex()), nil), stranger)
	req = testutil.WithChiURLParam(req, "id", idea.ID.Hex())
	rec := httptest.NewRecorder()

	h.ApproveMember(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestDecide_ApproveSpawnsProject(t *testing.T) {
	h, db := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	leader := fixtures.CreateStudent(ctx, "Leader", "leader@example.com")
	mate := fixtures.CreateStudent(ctx, "Mate", "mate@example.com")
	supervisor := fixtures.CreateSupervisor(ctx, "Supervisor", "supervisor@example.com")
	coordinator := fixtures.CreateCoordinator(ctx, "Coordinator", "coordinator@example.com")
	idea := fixtures.CreateIdea(ctx, "Pair Idea", leader.ID, "leader@example.com", "mate@example.com")

	if _, err := ideastore.New(db).ApproveMember(ctx, idea.ID, "mate@example.com", mate.ID, mate.FullName); err != nil {
		t.Fatalf("ApproveMember failed: %v", err)
	}

	body := fmt.Sprintf(`{"approved":true,"supervisor_id":%q}`, supervisor.ID.Hex())
	req := asUser(httptest.NewRequest("POST", fmt.Sprintf("/api/ideas/%s/decision", idea.ID.Hex()), strings.NewReader(body)), coordinator)
	req = testutil.WithChiURLParam(req, "id", idea.ID.Hex())
	rec := httptest.NewRecorder()

	h.Decide(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp struct {
		Idea    models.ProjectIdea `json:"idea"`
		Project *models.Project    `json:"project"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Idea.Status != models.IdeaApproved {
		t.Errorf("idea status: got %q, want %q", resp.Idea.Status, models.IdeaApproved)
	}
	if resp.Project == nil {
		t.Fatal("expected a spawned project")
	}
	if resp.Project.Status != models.ProjectActive {
		t.Errorf("project status: got %q, want %q", resp.Project.Status, models.ProjectActive)
	}
	if len(resp.Project.TeamMemberIDs) != 2 {
		t.Errorf("team size: got %d, want 2", len(resp.Project.TeamMemberIDs))
	}

	// The project is persisted, not just in the response.
	stored, err := projectstore.New(db).GetByID(ctx, resp.Project.ID)
	if err != nil {
		t.Fatalf("spawned project not found: %v", err)
	}
	if stored.SupervisorID != supervisor.ID {
		t.Errorf("supervisor: got %s, want %s", stored.SupervisorID.Hex(), supervisor.ID.Hex())
	}
}

func TestDecide_RejectNeedsReason(t *testing.T) {
	h, db := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	leader := fixtures.CreateStudent(ctx, "Leader", "leader@example.com")
	coordinator := fixtures.CreateCoordinator(ctx, "Coordinator", "coordinator@example.com")
	idea := fixtures.CreateIdea(ctx, "Pair Idea", leader.ID, "leader@example.com", "mate@example.com")

	req := asUser(httptest.NewRequest("POST", fmt.Sprintf("/api/ideas/%s/decision", idea.ID.Hex()),
		strings.NewReader(`{"approved":false}`)), coordinator)
	req = testutil.WithChiURLParam(req, "id", idea.ID.Hex())
	rec := httptest.NewRecorder()

	h.Decide(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestGet_TeamAndStaffOnly(t *testing.T) {
	h, db := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	leader := fixtures.CreateStudent(ctx, "Leader", "leader@example.com")
	outsider := fixtures.CreateStudent(ctx, "Outsider", "outsider@example.com")
	idea := fixtures.CreateIdea(ctx, "Private Idea", leader.ID, "leader@example.com")

	req := asUser(httptest.NewRequest("GET", "/api/ideas/"+idea.ID.Hex(), nil), outsider)
	req = testutil.WithChiURLParam(req, "id", idea.ID.Hex())
	rec := httptest.NewRecorder()

	h.Get(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("outsider: expected status %d, got %d", http.StatusForbidden, rec.Code)
	}

	req = asUser(httptest.NewRequest("GET", "/api/ideas/"+idea.ID.Hex(), nil), leader)
	req = testutil.WithChiURLParam(req, "id", idea.ID.Hex())
	rec = httptest.NewRecorder()

	h.Get(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("leader: expected status %d, got %d", http.StatusOK, rec.Code)
	}
}
