package repository

import (
	"context"
	"time"

	"clinic-appointment/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentRepository is the booking ledger.
type AppointmentRepository interface {
	// Create returns an error matching ErrDuplicate when a non-cancelled
	// appointment already holds the doctor's slot.
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	FindAll(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error)
	// BookedTimes lists the times held by non-cancelled appointments.
	BookedTimes(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.ClockTime, error)
	IsBooked(ctx context.Context, doctorID uuid.UUID, date time.Time, at entity.ClockTime) (bool, error)
	// UpdateStatus moves an appointment out of status from. It returns the
	// number of rows changed, zero when another writer got there first.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus, notes *string) (int64, error)
	CountByStatus(ctx context.Context) (map[entity.AppointmentStatus]int64, error)
	CountByDoctor(ctx context.Context) ([]DoctorAppointmentCount, error)
}

type DoctorAppointmentCount struct {
	DoctorID   uuid.UUID
	DoctorName string
	Total      int64
}
