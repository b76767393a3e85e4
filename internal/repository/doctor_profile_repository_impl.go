package repository

import (
	"context"
	"errors"

	"clinic-appointment/internal/domain/entity"
	domainRepo "clinic-appointment/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorProfileRepository struct {
	db *gorm.DB
}

func NewDoctorProfileRepository(db *gorm.DB) domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{db: db}
}

func (r *doctorProfileRepository) Create(ctx context.Context, profile *entity.DoctorProfile) error {
	return wrapWrite("create doctor profile", conn(ctx, r.db).Omit("User", "Branch", "Schedules").Create(profile).Error)
}

func (r *doctorProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := conn(ctx, r.db).Preload("User").Preload("Branch").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *doctorProfileRepository) FindAll(ctx context.Context, filter domainRepo.DoctorFilter) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	query := conn(ctx, r.db).
		Joins("JOIN users ON users.id = doctor_profiles.user_id").
		Where("users.role = ?", entity.RoleStaff)

	if filter.OnlyBookable {
		query = query.Where("users.is_active = ? AND doctor_profiles.is_available = ?", true, true)
	}
	if filter.BranchID != nil {
		query = query.Where("doctor_profiles.branch_id = ?", *filter.BranchID)
	}

	err := query.Preload("User").Preload("Branch").Order("users.full_name ASC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorProfileRepository) Update(ctx context.Context, profile *entity.DoctorProfile) error {
	return conn(ctx, r.db).Omit("User", "Branch", "Schedules").Save(profile).Error
}

// Delete removes the profile. Its schedule windows go with it through the
// ON DELETE CASCADE foreign key.
func (r *doctorProfileRepository) Delete(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := conn(ctx, r.db).Where("user_id = ?", userID).Delete(&entity.DoctorProfile{})
	return result.RowsAffected, result.Error
}
