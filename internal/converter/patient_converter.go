package converter

import (
	"clinic-appointment/internal/delivery/dto"
	"clinic-appointment/internal/domain/entity"
)

// PatientProfileToResponse converts a PatientProfile entity + User entity to PatientResponse DTO
func PatientProfileToResponse(profile *entity.PatientProfile, user *entity.User) *dto.PatientResponse {
	if profile == nil || user == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:          user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		PhoneNumber: user.PhoneNumber,
		Profile:     patientProfileToResponse(profile),
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

func patientProfileToResponse(profile *entity.PatientProfile) dto.PatientProfileResponse {
	response := dto.PatientProfileResponse{
		PatientCode:           profile.PatientCode,
		Gender:                profile.Gender,
		Address:               profile.Address,
		EmergencyContactName:  profile.EmergencyContactName,
		EmergencyContactPhone: profile.EmergencyContactPhone,
		Allergies:             profile.Allergies,
		MedicalConditions:     profile.MedicalConditions,
		CurrentMedications:    profile.CurrentMedications,
		DentalHistory:         profile.DentalHistory,
		InsuranceProvider:     profile.InsuranceProvider,
		InsuranceNumber:       profile.InsuranceNumber,
		ConsentTreatment:      profile.ConsentTreatment,
		ConsentDataSharing:    profile.ConsentDataSharing,
	}
	if profile.DateOfBirth != nil {
		response.DateOfBirth = profile.DateOfBirth.Format(entity.DateLayout)
	}
	return response
}
