package repository

import (
	"context"

	"clinic-appointment/internal/domain/entity"

	"github.com/google/uuid"
)

// DoctorFilter narrows doctor listings. OnlyBookable keeps active,
// available staff; BranchID keeps doctors attached to that branch.
type DoctorFilter struct {
	OnlyBookable bool
	BranchID     *int
}

type DoctorProfileRepository interface {
	Create(ctx context.Context, profile *entity.DoctorProfile) error
	// FindByUserID preloads the profile's user and branch.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error)
	FindAll(ctx context.Context, filter DoctorFilter) ([]entity.DoctorProfile, error)
	Update(ctx context.Context, profile *entity.DoctorProfile) error
	Delete(ctx context.Context, userID uuid.UUID) (int64, error)
}
