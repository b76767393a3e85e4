package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

// UpdateDoctorProfileRequest upserts the calling doctor's profile. Nil
// fields keep their current value; a branch_id of 0 detaches the branch.
type UpdateDoctorProfileRequest struct {
	BranchID          *int    `json:"branch_id" validate:"omitempty,gte=0"`
	Specialization    *string `json:"specialization" validate:"omitempty,max=100"`
	Biography         *string `json:"biography" validate:"omitempty"`
	YearsOfExperience *int    `json:"years_of_experience" validate:"omitempty,gte=0,lte=80"`
	ConsultationFee   *string `json:"consultation_fee" validate:"omitempty,numeric"`
	IsAvailable       *bool   `json:"is_available" validate:"omitempty"`
}

// Response DTOs

type DoctorProfileResponse struct {
	Specialization    string `json:"specialization"`
	Biography         string `json:"biography,omitempty"`
	YearsOfExperience int    `json:"years_of_experience"`
	ConsultationFee   string `json:"consultation_fee"`
	IsAvailable       bool   `json:"is_available"`
}

type DoctorResponse struct {
	ID                uuid.UUID       `json:"id"`
	Email             string          `json:"email"`
	FullName          string          `json:"full_name"`
	PhoneNumber       string          `json:"phone_number,omitempty"`
	Specialization    string          `json:"specialization"`
	Biography         string          `json:"biography,omitempty"`
	YearsOfExperience int             `json:"years_of_experience"`
	ConsultationFee   string          `json:"consultation_fee"`
	IsAvailable       bool            `json:"is_available"`
	IsActive          bool            `json:"is_active"`
	Branch            *BranchResponse `json:"branch,omitempty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
