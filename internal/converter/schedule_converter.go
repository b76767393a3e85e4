package converter

import (
	"clinic-appointment/internal/delivery/dto"
	"clinic-appointment/internal/domain/entity"
)

// ScheduleToResponse converts a ScheduleWindow entity to ScheduleResponse DTO
func ScheduleToResponse(window *entity.ScheduleWindow) *dto.ScheduleResponse {
	if window == nil {
		return nil
	}

	return &dto.ScheduleResponse{
		ID:          window.ID,
		DoctorID:    window.DoctorID,
		DoctorName:  window.Doctor.User.FullName,
		DayOfWeek:   window.DayOfWeek,
		DayName:     window.DayName(),
		StartTime:   window.StartTime.String(),
		EndTime:     window.EndTime.String(),
		IsAvailable: window.IsAvailable,
		CreatedAt:   window.CreatedAt,
		UpdatedAt:   window.UpdatedAt,
	}
}

// SchedulesToResponses converts a slice of ScheduleWindow entities to slice of ScheduleResponse DTOs
func SchedulesToResponses(windows []entity.ScheduleWindow) []dto.ScheduleResponse {
	responses := make([]dto.ScheduleResponse, len(windows))
	for i := range windows {
		responses[i] = *ScheduleToResponse(&windows[i])
	}
	return responses
}
