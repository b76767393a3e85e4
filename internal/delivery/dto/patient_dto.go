package dto

import (
	"time"

	"github.com/google/uuid"
)

// PatientUpdateSelfRequest changes the caller's own profile. A new password
// requires the current one.
type PatientUpdateSelfRequest struct {
	OldPassword           string  `json:"old_password" validate:"required_with=Password"`
	Password              string  `json:"password" validate:"omitempty,min=8"`
	PhoneNumber           *string `json:"phone_number" validate:"omitempty,max=20"`
	Address               *string `json:"address" validate:"omitempty"`
	EmergencyContactName  *string `json:"emergency_contact_name" validate:"omitempty,max=100"`
	EmergencyContactPhone *string `json:"emergency_contact_phone" validate:"omitempty,max=20"`
	Allergies             *string `json:"allergies" validate:"omitempty"`
	MedicalConditions     *string `json:"medical_conditions" validate:"omitempty"`
	CurrentMedications    *string `json:"current_medications" validate:"omitempty"`
	DentalHistory         *string `json:"dental_history" validate:"omitempty"`
	InsuranceProvider     *string `json:"insurance_provider" validate:"omitempty,max=100"`
	InsuranceNumber       *string `json:"insurance_number" validate:"omitempty,max=50"`
	ConsentTreatment      *bool   `json:"consent_treatment" validate:"omitempty"`
	ConsentDataSharing    *bool   `json:"consent_data_sharing" validate:"omitempty"`
}

// PatientProfileResponse represents patient profile data in responses
type PatientProfileResponse struct {
	PatientCode           string `json:"patient_code"`
	DateOfBirth           string `json:"date_of_birth,omitempty"`
	Gender                string `json:"gender,omitempty"`
	Address               string `json:"address,omitempty"`
	EmergencyContactName  string `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string `json:"emergency_contact_phone,omitempty"`
	Allergies             string `json:"allergies,omitempty"`
	MedicalConditions     string `json:"medical_conditions,omitempty"`
	CurrentMedications    string `json:"current_medications,omitempty"`
	DentalHistory         string `json:"dental_history,omitempty"`
	InsuranceProvider     string `json:"insurance_provider,omitempty"`
	InsuranceNumber       string `json:"insurance_number,omitempty"`
	ConsentTreatment      bool   `json:"consent_treatment"`
	ConsentDataSharing    bool   `json:"consent_data_sharing"`
}

// PatientResponse represents a patient user with profile data
type PatientResponse struct {
	ID          uuid.UUID              `json:"id"`
	Email       string                 `json:"email"`
	FullName    string                 `json:"full_name"`
	PhoneNumber string                 `json:"phone_number,omitempty"`
	Profile     PatientProfileResponse `json:"profile"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}
