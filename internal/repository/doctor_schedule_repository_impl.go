package repository

import (
	"context"
	"errors"

	"clinic-appointment/internal/domain/entity"
	domainRepo "clinic-appointment/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type scheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) domainRepo.ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) Create(ctx context.Context, window *entity.ScheduleWindow) error {
	return wrapWrite("create schedule window", conn(ctx, r.db).Omit("Doctor").Create(window).Error)
}

func (r *scheduleRepository) FindByID(ctx context.Context, id int) (*entity.ScheduleWindow, error) {
	var window entity.ScheduleWindow
	err := conn(ctx, r.db).Preload("Doctor.User").Where("id = ?", id).First(&window).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &window, nil
}

func (r *scheduleRepository) FindByDoctorAndDay(ctx context.Context, doctorID uuid.UUID, dayOfWeek int) (*entity.ScheduleWindow, error) {
	var window entity.ScheduleWindow
	err := conn(ctx, r.db).
		Where("doctor_id = ? AND day_of_week = ?", doctorID, dayOfWeek).
		First(&window).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &window, nil
}

func (r *scheduleRepository) FindAll(ctx context.Context, filter domainRepo.ScheduleFilter) ([]entity.ScheduleWindow, error) {
	var windows []entity.ScheduleWindow
	query := conn(ctx, r.db)

	if filter.DoctorID != nil {
		query = query.Where("doctor_schedules.doctor_id = ?", *filter.DoctorID)
	}
	if filter.OnlyBookable {
		query = query.
			Joins("JOIN doctor_profiles ON doctor_profiles.user_id = doctor_schedules.doctor_id").
			Joins("JOIN users ON users.id = doctor_profiles.user_id").
			Where("doctor_schedules.is_available = ?", true).
			Where("doctor_profiles.is_available = ? AND users.is_active = ?", true, true)
	}

	err := query.
		Preload("Doctor.User").
		Order("doctor_schedules.doctor_id ASC, doctor_schedules.day_of_week ASC").
		Find(&windows).Error
	if err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *scheduleRepository) Update(ctx context.Context, window *entity.ScheduleWindow) error {
	return wrapWrite("update schedule window", conn(ctx, r.db).Omit("Doctor").Save(window).Error)
}

func (r *scheduleRepository) Delete(ctx context.Context, id int) (int64, error) {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&entity.ScheduleWindow{})
	return result.RowsAffected, result.Error
}
