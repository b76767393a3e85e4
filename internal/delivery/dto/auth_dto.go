package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RegisterPatientRequest struct {
	Email                 string `json:"email" validate:"required,email"`
	Password              string `json:"password" validate:"required,min=8"`
	FullName              string `json:"full_name" validate:"required,min=2"`
	PhoneNumber           string `json:"phone_number" validate:"omitempty,min=6,max=20"`
	DateOfBirth           string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender                string `json:"gender" validate:"omitempty,oneof=M F O"`
	Address               string `json:"address" validate:"omitempty"`
	EmergencyContactName  string `json:"emergency_contact_name" validate:"omitempty,max=100"`
	EmergencyContactPhone string `json:"emergency_contact_phone" validate:"omitempty,max=20"`
	Allergies             string `json:"allergies" validate:"omitempty"`
	MedicalConditions     string `json:"medical_conditions" validate:"omitempty"`
	CurrentMedications    string `json:"current_medications" validate:"omitempty"`
	InsuranceProvider     string `json:"insurance_provider" validate:"omitempty,max=100"`
	InsuranceNumber       string `json:"insurance_number" validate:"omitempty,max=50"`
	ConsentTreatment      bool   `json:"consent_treatment"`
	ConsentDataSharing    bool   `json:"consent_data_sharing"`
}

// RegisterStaffRequest registers a doctor. The profile can be completed
// later through PUT /doctors/me.
type RegisterStaffRequest struct {
	Email             string `json:"email" validate:"required,email"`
	Password          string `json:"password" validate:"required,min=8"`
	FullName          string `json:"full_name" validate:"required,min=2"`
	PhoneNumber       string `json:"phone_number" validate:"omitempty,min=6,max=20"`
	Specialization    string `json:"specialization" validate:"omitempty,max=100"`
	Biography         string `json:"biography" validate:"omitempty"`
	YearsOfExperience int    `json:"years_of_experience" validate:"gte=0,lte=80"`
	ConsultationFee   string `json:"consultation_fee" validate:"omitempty,numeric"`
}

type CreateAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=2"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserResponse struct {
	ID             uuid.UUID               `json:"id"`
	Email          string                  `json:"email"`
	FullName       string                  `json:"full_name"`
	PhoneNumber    string                  `json:"phone_number,omitempty"`
	Role           string                  `json:"role"`
	IsActive       bool                    `json:"is_active"`
	DoctorProfile  *DoctorProfileResponse  `json:"doctor_profile,omitempty"`
	PatientProfile *PatientProfileResponse `json:"patient_profile,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}
