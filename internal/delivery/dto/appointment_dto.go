package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID        uuid.UUID `json:"doctor_id" validate:"required"`
	AppointmentDate string    `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	AppointmentTime string    `json:"appointment_time" validate:"required,datetime=15:04"`
	Reason          string    `json:"reason" validate:"omitempty,max=1000"`
}

type UpdateAppointmentStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=UPCOMING ATTENDED MISSED CANCELLED"`
	Notes  *string `json:"notes" validate:"omitempty,max=2000"`
}

// AppointmentListQuery carries the optional list filters.
type AppointmentListQuery struct {
	Status string `validate:"omitempty,oneof=UPCOMING ATTENDED MISSED CANCELLED COMPLETED"`
	Date   string `validate:"omitempty,datetime=2006-01-02"`
}

type AppointmentHistoryQuery struct {
	Type   string `validate:"omitempty,oneof=upcoming past all"`
	Status string `validate:"omitempty,oneof=UPCOMING ATTENDED MISSED CANCELLED COMPLETED"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	PatientID       uuid.UUID `json:"patient_id"`
	PatientName     string    `json:"patient_name,omitempty"`
	DoctorID        uuid.UUID `json:"doctor_id"`
	DoctorName      string    `json:"doctor_name,omitempty"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	Status          string    `json:"status"`
	Reason          string    `json:"reason,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type AppointmentHistoryResponse struct {
	Upcoming []AppointmentResponse `json:"upcoming,omitempty"`
	Past     []AppointmentResponse `json:"past,omitempty"`
	All      []AppointmentResponse `json:"all,omitempty"`
}

type DoctorAppointmentCount struct {
	DoctorID   uuid.UUID `json:"doctor_id"`
	DoctorName string    `json:"doctor_name"`
	Total      int64     `json:"total"`
}

type AppointmentReportResponse struct {
	TotalAppointments int64                    `json:"total_appointments"`
	StatusCounts      map[string]int64         `json:"status_counts"`
	DoctorCounts      []DoctorAppointmentCount `json:"doctor_counts"`
}
