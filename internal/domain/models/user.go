package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role identifies what a user can do in the system.
type Role string

const (
	RoleStudent     Role = "student"
	RoleSupervisor  Role = "supervisor"
	RoleCoordinator Role = "coordinator"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleSupervisor, RoleCoordinator:
		return true
	}
	return false
}

// User represents students, supervisors, and coordinators.
//
// NOTE:
//   - Project membership is not embedded on User.
//     Use the projects collection (team_member_ids) to discover a
//     student's project.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email      string             `bson:"email" json:"email"`
	EmailCI    string             `bson:"email_ci" json:"-"`
	Role       Role               `bson:"role" json:"role"`
	Status     string             `bson:"status,omitempty" json:"status,omitempty"` // active | disabled

	// PasswordHash is empty for users who only sign in through the
	// identity provider.
	PasswordHash string `bson:"password_hash,omitempty" json:"-"`
	AuthMethod   string `bson:"auth_method,omitempty" json:"auth_method,omitempty"` // password | google

	AvatarURL string `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
