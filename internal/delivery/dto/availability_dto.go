package dto

import "github.com/google/uuid"

type SlotsResponse struct {
	DoctorID uuid.UUID `json:"doctor_id"`
	Date     string    `json:"date"`
	Slots    []string  `json:"slots"`
}

type SlotCheckResponse struct {
	DoctorID  uuid.UUID `json:"doctor_id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Available bool      `json:"available"`
}

type AvailabilityRangeResponse struct {
	DoctorID     uuid.UUID           `json:"doctor_id"`
	StartDate    string              `json:"start_date"`
	EndDate      string              `json:"end_date"`
	Availability map[string][]string `json:"availability"`
}
