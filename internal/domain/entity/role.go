package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is the closed set of actor kinds. Staff covers doctors.
type Role string

const (
	RolePatient Role = "patient"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RolePatient, RoleStaff, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string {
	return string(r)
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func (a Actor) IsPatient() bool { return a.Role == RolePatient }
func (a Actor) IsStaff() bool   { return a.Role == RoleStaff }
func (a Actor) IsAdmin() bool   { return a.Role == RoleAdmin }
