package repository

import (
	"context"

	"clinic-appointment/internal/domain/entity"
)

// VisitRecordRepository is the visit-notes document store. Create returns
// an error matching ErrDuplicate for a second record of one appointment.
type VisitRecordRepository interface {
	Create(ctx context.Context, record *entity.VisitRecord) error
	FindByAppointmentID(ctx context.Context, appointmentID string) (*entity.VisitRecord, error)
	FindAll(ctx context.Context, filter entity.VisitRecordFilter) ([]entity.VisitRecord, error)
}
