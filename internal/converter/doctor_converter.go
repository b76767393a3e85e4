package converter

import (
	"clinic-appointment/internal/delivery/dto"
	"clinic-appointment/internal/domain/entity"
)

// DoctorProfileToResponse converts a DoctorProfile entity to DoctorResponse DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:                profile.UserID,
		Email:             profile.User.Email,
		FullName:          profile.User.FullName,
		PhoneNumber:       profile.User.PhoneNumber,
		Specialization:    profile.Specialization,
		Biography:         profile.Biography,
		YearsOfExperience: profile.YearsOfExperience,
		ConsultationFee:   profile.ConsultationFee.StringFixed(2),
		IsAvailable:       profile.IsAvailable,
		IsActive:          profile.User.Active(),
		Branch:            BranchToResponse(profile.Branch),
	}
}

// DoctorProfilesToResponses converts a slice of DoctorProfile entities to slice of DoctorResponse DTOs
func DoctorProfilesToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i := range profiles {
		responses[i] = *DoctorProfileToResponse(&profiles[i])
	}
	return responses
}

func doctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorProfileResponse {
	return &dto.DoctorProfileResponse{
		Specialization:    profile.Specialization,
		Biography:         profile.Biography,
		YearsOfExperience: profile.YearsOfExperience,
		ConsultationFee:   profile.ConsultationFee.StringFixed(2),
		IsAvailable:       profile.IsAvailable,
	}
}
