package taskstore_test

import (
	"errors"
	"testing"

	taskstore "github.com/dalemusser/capstonehub/internal/app/store/tasks"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"github.com/dalemusser/capstonehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreate_DefaultsToPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	supervisor := fixtures.CreateSupervisor(ctx, "Test Supervisor", "supervisor@example.com")
	project := fixtures.CreateProject(ctx, "Test Project", supervisor.ID)

	task, err := store.Create(ctx, models.Task{
		ProjectID: project.ID,
		Title:     "Literature Review",
		Weight:    20,
		MaxGrade:  100,
		CreatedBy: supervisor.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if task.Status != models.TaskPending {
		t.Errorf("status: got %q, want %q", task.Status, models.TaskPending)
	}
	if task.Grade != nil {
		t.Error("new task should have no grade")
	}
}

func TestSubmit_MovesToSubmitted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	supervisor := fixtures.CreateSupervisor(ctx, "Test Supervisor", "supervisor@example.com")
	student := fixtures.CreateStudent(ctx, "Test Student", "student@example.com")
	project := fixtures.CreateProject(ctx, "Test Project", supervisor.ID, student.ID)
	task := fixtures.CreateTask(ctx, project.ID, supervisor.ID, "Prototype", 30, 100)

	updated, err := store.Submit(ctx, task.ID, models.Submission{
		Text:        "here is my work",
		SubmittedBy: student.ID,
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if updated.Status != models.TaskSubmitted {
		t.Errorf("status: got %q, want %q", updated.Status, models.TaskSubmitted)
	}
	if updated.Submission == nil || updated.Submission.Text != "here is my work" {
		t.Error("submission not persisted")
	}
}

func TestSubmit_AfterGradeFails(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	supervisor := fixtures.CreateSupervisor(ctx, "Test Supervisor", "supervisor@example.com")
	student := fixtures.CreateStudent(ctx, "Test Student", "student@example.com")
	project := fixtures.CreateProject(ctx, "Test Project", supervisor.ID, student.ID)
	task := fixtures.CreateTask(ctx, project.ID, supervisor.ID, "Prototype", 30, 100)

	if _, err := store.Grade(ctx, task.ID, supervisor.ID, 85, "good"); err != nil {
		t.Fatalf("Grade failed: %v", err)
	}

	_, err := store.Submit(ctx, task.ID, models.Submission{SubmittedBy: student.ID})
	if !errors.Is(err, taskstore.ErrAlreadyGraded) {
		t.Errorf("err = %v, want ErrAlreadyGraded", err)
	}
}

func TestGrade_FromPendingAndRegrade(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	supervisor := fixtures.CreateSupervisor(ctx, "Test Supervisor", "supervisor@example.com")
	project := fixtures.CreateProject(ctx, "Test Project", supervisor.ID)
	task := fixtures.CreateTask(ctx, project.ID, supervisor.ID, "Report", 50, 100)

	// Grading straight from pending is allowed.
	graded, err := store.Grade(ctx, task.ID, supervisor.ID, 70, "first pass")
	if err != nil {
		t.Fatalf("Grade failed: %v", err)
	}
	if graded.Status != models.TaskGraded {
		t.Errorf("status: got %q, want %q", graded.Status, models.TaskGraded)
	}
	if graded.Grade == nil || *graded.Grade != 70 {
		t.Errorf("grade not persisted: %v", graded.Grade)
	}

	// Re-grading replaces the previous grade.
	regraded, err := store.Grade(ctx, task.ID, supervisor.ID, 90, "after revision")
	if err != nil {
		t.Fatalf("re-Grade failed: %v", err)
	}
	if regraded.Grade == nil || *regraded.Grade != 90 {
		t.Errorf("re-grade: got %v, want 90", regraded.Grade)
	}
	if regraded.Feedback != "after revision" {
		t.Errorf("feedback: got %q", regraded.Feedback)
	}
}

func TestGrade_MissingTask(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Grade(ctx, primitive.NewObjectID(), primitive.NewObjectID(), 50, "")
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("err = %v, want ErrNoDocuments", err)
	}
}

func TestListByProject_OldestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	supervisor := fixtures.CreateSupervisor(ctx, "Test Supervisor", "supervisor@example.com")
	project := fixtures.CreateProject(ctx, "Test Project", supervisor.ID)
	other := fixtures.CreateProject(ctx, "Other Project", supervisor.ID)

	fixtures.CreateTask(ctx, project.ID, supervisor.ID, "First", 25, 100)
	fixtures.CreateTask(ctx, project.ID, supervisor.ID, "Second", 25, 100)
	fixtures.CreateTask(ctx, other.ID, supervisor.ID, "Elsewhere", 25, 100)

	tasks, err := store.ListByProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("ListByProject failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].Title != "First" {
		t.Errorf("order: got %q first, want %q", tasks[0].Title, "First")
	}
}
