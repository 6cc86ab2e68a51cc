package user

import "github.com/google/uuid"

// Accounts live in the identity collaborator; the engine only sees the
// authenticated actor carried by the JWT.
type Role string

const (
	RoleUser  Role = "user"
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleStaff, RoleAdmin:
		return true
	default:
		return false
	}
}

// Actor is the caller identity used for authorization decisions.
// BranchID is set for staff callers and scopes them to their own branch.
type Actor struct {
	ID       uuid.UUID
	Role     Role
	BranchID *uuid.UUID
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) IsStaff() bool {
	return a.Role == RoleStaff
}

// CanTargetBranch reports whether the actor may act on halls of the given
// branch. Admins target any branch; staff only their own.
func (a Actor) CanTargetBranch(branchID uuid.UUID) bool {
	if a.IsAdmin() {
		return true
	}
	if a.IsStaff() && a.BranchID != nil {
		return *a.BranchID == branchID
	}
	return false
}
