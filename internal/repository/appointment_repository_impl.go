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

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

// Create relies on idx_appointments_doctor_slot to reject a second live
// booking of the same slot.
func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	err := conn(ctx, r.db).Omit("Patient", "Doctor").Create(appointment).Error
	return wrapWrite("create appointment", err)
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := conn(ctx, r.db).
		Preload("Patient").Preload("Doctor").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := conn(ctx, r.db).Preload("Patient").Preload("Doctor")

	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Date != nil {
		query = query.Where("appointment_date = ?", filter.Date.Format(entity.DateLayout))
	}
	if filter.FromDate != nil {
		query = query.Where("appointment_date >= ?", filter.FromDate.Format(entity.DateLayout))
	}
	if len(filter.ExcludeStatus) > 0 {
		query = query.Where("status NOT IN ?", filter.ExcludeStatus)
	}

	if filter.Ascending {
		query = query.Order("appointment_date ASC, appointment_time ASC")
	} else {
		query = query.Order("appointment_date DESC, appointment_time DESC")
	}

	if err := query.Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) BookedTimes(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.ClockTime, error) {
	var times []entity.ClockTime
	err := conn(ctx, r.db).Model(&entity.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND status <> ?",
			doctorID, date.Format(entity.DateLayout), entity.AppointmentStatusCancelled).
		Order("appointment_time ASC").
		Pluck("appointment_time", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

func (r *appointmentRepository) IsBooked(ctx context.Context, doctorID uuid.UUID, date time.Time, at entity.ClockTime) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND appointment_time = ? AND status <> ?",
			doctorID, date.Format(entity.DateLayout), at, entity.AppointmentStatusCancelled).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateStatus changes status only while the row is still in from, so two
// racing transitions cannot both succeed. Returns affected rows.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus, notes *string) (int64, error) {
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": gorm.Expr("NOW()"),
	}
	if notes != nil {
		updates["notes"] = *notes
	}

	result := conn(ctx, r.db).Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) CountByStatus(ctx context.Context) (map[entity.AppointmentStatus]int64, error) {
	var rows []struct {
		Status entity.AppointmentStatus
		Total  int64
	}
	err := conn(ctx, r.db).Model(&entity.Appointment{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entity.AppointmentStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *appointmentRepository) CountByDoctor(ctx context.Context) ([]domainRepo.DoctorAppointmentCount, error) {
	var rows []struct {
		DoctorID   uuid.UUID
		DoctorName string
		Total      int64
	}
	err := conn(ctx, r.db).Model(&entity.Appointment{}).
		Select("appointments.doctor_id, users.full_name AS doctor_name, COUNT(*) AS total").
		Joins("JOIN users ON users.id = appointments.doctor_id").
		Group("appointments.doctor_id, users.full_name").
		Order("total DESC, users.full_name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make([]domainRepo.DoctorAppointmentCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, domainRepo.DoctorAppointmentCount{
			DoctorID:   row.DoctorID,
			DoctorName: row.DoctorName,
			Total:      row.Total,
		})
	}
	return counts, nil
}
