package usecase

import (
	"clinic-appointment/internal/domain/entity"
	"clinic-appointment/pkg/apperror"
)

var (
	ErrUnknownRole  = apperror.Permission("unknown role")
	ErrPatientsOnly = apperror.Permission("only patients can perform this action")
	ErrStaffOnly    = apperror.Permission("only doctors can perform this action")
	ErrAdminsOnly   = apperror.Permission("only admins can perform this action")
)

func requireRole(actor entity.Actor, role entity.Role) error {
	switch actor.Role {
	case entity.RolePatient, entity.RoleStaff, entity.RoleAdmin:
	default:
		return ErrUnknownRole
	}
	if actor.Role == role {
		return nil
	}

	switch role {
	case entity.RolePatient:
		return ErrPatientsOnly
	case entity.RoleStaff:
		return ErrStaffOnly
	default:
		return ErrAdminsOnly
	}
}
