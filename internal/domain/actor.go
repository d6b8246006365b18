package domain

import "github.com/google/uuid"

// Actor is the authenticated user on whose behalf an operation runs. It is
// resolved once per request by the auth middleware and passed down explicitly.
type Actor struct {
	ID       uuid.UUID
	Role     Role
	FullName string
}

func (a Actor) IsAuthenticated() bool {
	return a.ID != uuid.Nil
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin || a.Role == RoleSuperAdmin
}

func (a Actor) IsSuperAdmin() bool {
	return a.Role == RoleSuperAdmin
}
