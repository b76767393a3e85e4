package converter

import (
	"clinic-appointment/internal/delivery/dto"
	"clinic-appointment/internal/domain/entity"
	"clinic-appointment/internal/domain/repository"
)

func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:              appointment.ID,
		PatientID:       appointment.PatientID,
		PatientName:     appointment.Patient.FullName,
		DoctorID:        appointment.DoctorID,
		DoctorName:      appointment.Doctor.FullName,
		AppointmentDate: appointment.AppointmentDate.Format(entity.DateLayout),
		AppointmentTime: appointment.AppointmentTime.String(),
		Status:          string(appointment.Status),
		Reason:          appointment.Reason,
		Notes:           appointment.Notes,
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

func DoctorCountsToResponses(counts []repository.DoctorAppointmentCount) []dto.DoctorAppointmentCount {
	responses := make([]dto.DoctorAppointmentCount, len(counts))
	for i, c := range counts {
		responses[i] = dto.DoctorAppointmentCount{
			DoctorID:   c.DoctorID,
			DoctorName: c.DoctorName,
			Total:      c.Total,
		}
	}
	return responses
}
