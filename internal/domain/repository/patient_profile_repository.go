package repository

import (
	"context"
	"time"

	"clinic-appointment/internal/domain/entity"

	"github.com/google/uuid"
)

type PatientProfileRepository interface {
	Create(ctx context.Context, profile *entity.PatientProfile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.PatientProfile, error)
	Update(ctx context.Context, profile *entity.PatientProfile) error
	// NextPatientCode reserves the next code of day's sequence. It must run
	// inside the transaction that stores the profile.
	NextPatientCode(ctx context.Context, day time.Time) (string, error)
}
