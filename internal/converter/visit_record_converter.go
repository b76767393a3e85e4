package converter

import (
	"clinic-appointment/internal/delivery/dto"
	"clinic-appointment/internal/domain/entity"
)

func VisitRecordToResponse(record *entity.VisitRecord) *dto.VisitRecordResponse {
	if record == nil {
		return nil
	}

	return &dto.VisitRecordResponse{
		ID:            record.ID.Hex(),
		AppointmentID: record.AppointmentID,
		PatientID:     record.PatientID,
		DoctorID:      record.DoctorID,
		VisitDate:     record.VisitDate.Format(entity.DateLayout),
		Notes:         record.Notes,
		Prescription:  record.Prescription,
		CreatedAt:     record.CreatedAt,
	}
}

func VisitRecordsToResponses(records []entity.VisitRecord) []dto.VisitRecordResponse {
	responses := make([]dto.VisitRecordResponse, len(records))
	for i := range records {
		responses[i] = *VisitRecordToResponse(&records[i])
	}
	return responses
}
