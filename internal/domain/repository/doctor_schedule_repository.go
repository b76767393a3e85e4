package repository

import (
	"context"

	"clinic-appointment/internal/domain/entity"

	"github.com/google/uuid"
)

// ScheduleFilter narrows schedule listings. Nil fields are ignored.
type ScheduleFilter struct {
	DoctorID *uuid.UUID
	// OnlyBookable keeps available windows of active, available doctors.
	OnlyBookable bool
}

// ScheduleRepository is the schedule store.
type ScheduleRepository interface {
	Create(ctx context.Context, window *entity.ScheduleWindow) error
	FindByID(ctx context.Context, id int) (*entity.ScheduleWindow, error)
	FindByDoctorAndDay(ctx context.Context, doctorID uuid.UUID, dayOfWeek int) (*entity.ScheduleWindow, error)
	FindAll(ctx context.Context, filter ScheduleFilter) ([]entity.ScheduleWindow, error)
	Update(ctx context.Context, window *entity.ScheduleWindow) error
	Delete(ctx context.Context, id int) (int64, error)
}
