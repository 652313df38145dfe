package testutil

import (
	"context"
	"testing"
	"time"

	ideastore "github.com/dalemusser/capstonehub/internal/app/store/ideas"
	projectstore "github.com/dalemusser/capstonehub/internal/app/store/projects"
	taskstore "github.com/dalemusser/capstonehub/internal/app/store/tasks"
	userstore "github.com/dalemusser/capstonehub/internal/app/store/users"
	"github.com/dalemusser/capstonehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures creates prerequisite documents for tests. Every creator
// fails the test on error so call sites stay flat.
type Fixtures struct {
	t  *testing.T
	db *mongo.Database

	users    *userstore.Store
	projects *projectstore.Store
	ideas    *ideastore.Store
	tasks    *taskstore.Store
}

func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{
		t:        t,
		db:       db,
		users:    userstore.New(db),
		projects: projectstore.New(db),
		ideas:    ideastore.New(db),
		tasks:    taskstore.New(db),
	}
}

// CreateUser inserts a user with the given role.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email string, role models.Role) models.User {
	f.t.Helper()
	u, err := f.users.Create(ctx, models.User{
		FullName: fullName,
		Email:    email,
		Role:     role,
	})
	if err != nil {
		f.t.Fatalf("fixture: create user %s: %v", email, err)
	}
	return u
}

func (f *Fixtures) CreateStudent(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleStudent)
}

func (f *Fixtures) CreateSupervisor(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleSupervisor)
}

func (f *Fixtures) CreateCoordinator(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleCoordinator)
}

// CreateProject inserts an active project with the given team.
func (f *Fixtures) CreateProject(ctx context.Context, title string, supervisorID primitive.ObjectID, memberIDs ...primitive.ObjectID) models.Project {
	f.t.Helper()
	p, err := f.projects.Create(ctx, models.Project{
		Title:         title,
		Status:        models.ProjectActive,
		SupervisorID:  supervisorID,
		TeamMemberIDs: memberIDs,
	})
	if err != nil {
		f.t.Fatalf("fixture: create project %s: %v", title, err)
	}
	return p
}

// CreateIdea inserts a proposal. The first email is the leader and is
// already approved; the rest are unapproved invitees.
func (f *Fixtures) CreateIdea(ctx context.Context, title string, proposedBy primitive.ObjectID, emails ...string) models.ProjectIdea {
	f.t.Helper()
	now := time.Now().UTC()
	members := make([]models.IdeaTeamMember, 0, len(emails))
	for i, email := range emails {
		m := models.IdeaTeamMember{Email: email, Role: models.TeamMember}
		if i == 0 {
			m.Role = models.TeamLeader
			m.Approved = true
			m.UserID = &proposedBy
			m.ApprovedAt = &now
		}
		members = append(members, m)
	}
	idea, err := f.ideas.Create(ctx, models.ProjectIdea{
		Title:            title,
		ProblemStatement: "fixture problem statement",
		TeamMembers:      members,
		ProposedBy:       proposedBy,
	})
	if err != nil {
		f.t.Fatalf("fixture: create idea %s: %v", title, err)
	}
	return idea
}

// CreateTask inserts a pending task on the project.
func (f *Fixtures) CreateTask(ctx context.Context, projectID, createdBy primitive.ObjectID, title string, weight, maxGrade float64) models.Task {
	f.t.Helper()
	task, err := f.tasks.Create(ctx, models.Task{
		ProjectID: projectID,
		Title:     title,
		Weight:    weight,
		MaxGrade:  maxGrade,
		CreatedBy: createdBy,
	})
	if err != nil {
		f.t.Fatalf("fixture: create task %s: %v", title, err)
	}
	return task
}
