package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CreateScheduleRequest adds a weekly window. Staff create for themselves;
// admins must name the doctor.
type CreateScheduleRequest struct {
	DoctorID    *uuid.UUID `json:"doctor_id" validate:"omitempty"`
	DayOfWeek   *int       `json:"day_of_week" validate:"required,gte=0,lte=6"`
	StartTime   string     `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string     `json:"end_time" validate:"required,datetime=15:04"`
	IsAvailable *bool      `json:"is_available" validate:"omitempty"`
}

type UpdateScheduleRequest struct {
	DayOfWeek   *int    `json:"day_of_week" validate:"omitempty,gte=0,lte=6"`
	StartTime   *string `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime     *string `json:"end_time" validate:"omitempty,datetime=15:04"`
	IsAvailable *bool   `json:"is_available" validate:"omitempty"`
}

// Response DTOs

type ScheduleResponse struct {
	ID          int       `json:"id"`
	DoctorID    uuid.UUID `json:"doctor_id"`
	DoctorName  string    `json:"doctor_name,omitempty"`
	DayOfWeek   int       `json:"day_of_week"`
	DayName     string    `json:"day_name"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
	Total     int                `json:"total"`
}
