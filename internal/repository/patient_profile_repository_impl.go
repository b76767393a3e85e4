package repository

import (
	"context"
	"errors"
	"time"

	"clinic-appointment/internal/domain/entity"
	domainRepo "clinic-appointment/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientProfileRepository struct {
	db *gorm.DB
}

func NewPatientProfileRepository(db *gorm.DB) domainRepo.PatientProfileRepository {
	return &patientProfileRepository{db: db}
}

func (r *patientProfileRepository) Create(ctx context.Context, profile *entity.PatientProfile) error {
	return wrapWrite("create patient profile", conn(ctx, r.db).Omit("User").Create(profile).Error)
}

func (r *patientProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.PatientProfile, error) {
	var profile entity.PatientProfile
	err := conn(ctx, r.db).Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *patientProfileRepository) Update(ctx context.Context, profile *entity.PatientProfile) error {
	return conn(ctx, r.db).Omit("User").Save(profile).Error
}

// patientCodeLock keys the advisory lock serializing code allocation.
const patientCodeLock = 7240311

func (r *patientProfileRepository) NextPatientCode(ctx context.Context, day time.Time) (string, error) {
	db := conn(ctx, r.db)
	if err := db.Exec("SELECT pg_advisory_xact_lock(?)", patientCodeLock).Error; err != nil {
		return "", err
	}

	prefix := entity.PatientCodePrefix(day)
	var last []string
	err := db.Model(&entity.PatientProfile{}).
		Where("patient_code LIKE ?", prefix+"%").
		Order("LENGTH(patient_code) DESC, patient_code DESC").
		Limit(1).
		Pluck("patient_code", &last).Error
	if err != nil {
		return "", err
	}

	if len(last) == 0 {
		return entity.NextPatientCode(prefix, ""), nil
	}
	return entity.NextPatientCode(prefix, last[0]), nil
}
