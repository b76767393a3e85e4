package dto

import "time"

type CreateVisitRecordRequest struct {
	Notes        string `json:"notes" validate:"required,max=5000"`
	Prescription string `json:"prescription" validate:"omitempty,max=5000"`
}

type VisitRecordResponse struct {
	ID            string    `json:"id"`
	AppointmentID string    `json:"appointment_id"`
	PatientID     string    `json:"patient_id"`
	DoctorID      string    `json:"doctor_id"`
	VisitDate     string    `json:"visit_date"`
	Notes         string    `json:"notes"`
	Prescription  string    `json:"prescription,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type VisitRecordListResponse struct {
	Records []VisitRecordResponse `json:"records"`
	Total   int                   `json:"total"`
}
