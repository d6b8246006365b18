package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent    Role = "student"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

type TekxPosition string

const (
	Tek1 TekxPosition = "Tek1"
	Tek2 TekxPosition = "Tek2"
	Tek3 TekxPosition = "Tek3"
	Tek4 TekxPosition = "Tek4"
	Tek5 TekxPosition = "Tek5"
)

func (p TekxPosition) Valid() bool {
	switch p {
	case Tek1, Tek2, Tek3, Tek4, Tek5:
		return true
	}
	return false
}

type Profile struct {
	ID           uuid.UUID     `json:"id"`
	Email        string        `json:"email"`
	FullName     string        `json:"full_name"`
	Role         Role          `json:"role"`
	TekxPosition *TekxPosition `json:"tekx_position,omitempty"`
	Password     string        `json:"-"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (p Profile) Actor() Actor {
	return Actor{ID: p.ID, Role: p.Role, FullName: p.FullName}
}

// ProfileUpdate carries the optional fields of a profile change. Nil means
// "leave as is".
type ProfileUpdate struct {
	FullName     *string
	Role         *Role
	TekxPosition *TekxPosition
}

type AdminStats struct {
	Students         int64                   `json:"students"`
	Admins           int64                   `json:"admins"`
	SuperAdmins      int64                   `json:"super_admins"`
	ProjectsByStatus map[ProjectStatus]int64 `json:"projects_by_status"`
	EventsByStatus   map[EventStatus]int64   `json:"events_by_status"`
	TotalLikes       int64                   `json:"total_likes"`
}
