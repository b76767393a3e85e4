package converter

import (
	"clinic-appointment/internal/delivery/dto"
	"clinic-appointment/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
// Includes DoctorProfile and PatientProfile if they are loaded
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		PhoneNumber: user.PhoneNumber,
		Role:        user.Role.String(),
		IsActive:    user.Active(),
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}

	if user.DoctorProfile != nil {
		response.DoctorProfile = doctorProfileToResponse(user.DoctorProfile)
	}

	if user.PatientProfile != nil {
		profile := patientProfileToResponse(user.PatientProfile)
		response.PatientProfile = &profile
	}

	return response
}
