// Package policy is the single capability check used by every service,
// replacing the per-method role comparisons scattered through the source.
package policy

import (
	"github.com/google/uuid"

	"collabsphere_backend/internals/constants"
)

// Actor is the authenticated caller as resolved by the auth middleware.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) IsAdmin() bool    { return a.Role == constants.RoleAdmin }
func (a Actor) IsLecturer() bool { return a.Role == constants.RoleLecturer }
func (a Actor) IsStudent() bool  { return a.Role == constants.RoleStudent }

// CanManage reports whether the actor may mutate a resource whose ownership
// chain ends at ownerID (the lecturer owning the classroom). Admins always
// may; lecturers only for their own resources.
func (a Actor) CanManage(ownerID uuid.UUID) bool {
	if a.IsAdmin() {
		return true
	}
	return a.IsLecturer() && a.ID == ownerID
}

// CanApprove reports whether the actor may decide a pending project.
func (a Actor) CanApprove() bool {
	return a.Role == constants.RoleHeadDepartment || a.Role == constants.RoleAdmin
}

// HasRole reports whether the actor's role is one of the given roles.
func (a Actor) HasRole(roles ...string) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

// CanObserveTeam: lecturers and admins see every team; anyone else must be
// checked for membership by the caller.
func (a Actor) CanObserveTeam() bool {
	return a.IsAdmin() || a.IsLecturer()
}
