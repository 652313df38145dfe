package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/capstonehub/internal/app/system/auth"
	"github.com/dalemusser/capstonehub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserCtx_NoUser(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)

	role, name, id, ok := authz.UserCtx(r)
	if ok {
		t.Fatal("expected ok=false without a user")
	}
	if role != "visitor" || name != "" || id != primitive.NilObjectID {
		t.Errorf("got role=%q name=%q id=%v", role, name, id)
	}
}

func TestUserCtx_MalformedID(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r = auth.WithTestUser(r, &auth.SessionUser{ID: "not-an-objectid", Role: "student"})

	if _, _, _, ok := authz.UserCtx(r); ok {
		t.Error("malformed session ID must fail closed")
	}
}

func TestRoleHelpers(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	r := httptest.NewRequest("GET", "/", nil)
	r = auth.WithTestUser(r, &auth.SessionUser{ID: id, Name: "S", Role: "Supervisor"})

	if !authz.IsSupervisor(r) {
		t.Error("IsSupervisor should match case-insensitively")
	}
	if authz.IsStudent(r) || authz.IsCoordinator(r) {
		t.Error("other role helpers must not match")
	}
	if !authz.IsStaff(r) {
		t.Error("supervisor is staff")
	}
	if !authz.HasAnyRole(r, "coordinator", "supervisor") {
		t.Error("HasAnyRole should match supervisor")
	}
	if authz.HasRole(r, "student") {
		t.Error("HasRole should not match student")
	}
}
