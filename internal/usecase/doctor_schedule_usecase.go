package usecase

import (
	"context"
	"errors"
	"strconv"

	"clinic-appointment/internal/converter"
	"clinic-appointment/internal/delivery/dto"
	"clinic-appointment/internal/domain/entity"
	"clinic-appointment/internal/domain/repository"
	"clinic-appointment/internal/service"
	"clinic-appointment/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrScheduleNotFound  = apperror.NotFound("schedule not found")
	ErrScheduleDayTaken  = apperror.Conflict("doctor already has a schedule for this day")
	ErrInvalidTimeFormat = apperror.Validation("invalid time format, use HH:MM")
	ErrInvalidTimeRange  = apperror.Validation("start time must be before end time")
	ErrScheduleNotOwned  = apperror.Permission("schedule belongs to another doctor")
)

// ErrScheduleDoctorNeeded is returned when an admin creates a window
// without naming the doctor.
var ErrScheduleDoctorNeeded = apperror.Validation("doctor_id is required").WithFields(map[string]string{
	"doctor_id": "doctor_id is required",
})

type DoctorScheduleUsecase interface {
	ListSchedules(ctx context.Context, actor entity.Actor, doctorID *uuid.UUID) (*dto.ScheduleListResponse, error)
	CreateSchedule(ctx context.Context, actor entity.Actor, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	UpdateSchedule(ctx context.Context, actor entity.Actor, scheduleID int, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, actor entity.Actor, scheduleID int) error
}

type doctorScheduleUsecase struct {
	log                 *logrus.Logger
	scheduleRepo        repository.ScheduleRepository
	doctorProfileRepo   repository.DoctorProfileRepository
	availabilityService *service.AvailabilityService
	auditService        service.AuditService
}

func NewDoctorScheduleUsecase(
	log *logrus.Logger,
	scheduleRepo repository.ScheduleRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	availabilityService *service.AvailabilityService,
	auditService service.AuditService,
) DoctorScheduleUsecase {
	return &doctorScheduleUsecase{
		log:                 log,
		scheduleRepo:        scheduleRepo,
		doctorProfileRepo:   doctorProfileRepo,
		availabilityService: availabilityService,
		auditService:        auditService,
	}
}

// ListSchedules shows patients the open windows of bookable doctors, staff
// their own windows and admins everything. doctorID narrows the list for
// patients and admins.
func (u *doctorScheduleUsecase) ListSchedules(ctx context.Context, actor entity.Actor, doctorID *uuid.UUID) (*dto.ScheduleListResponse, error) {
	filter := repository.ScheduleFilter{DoctorID: doctorID}

	switch actor.Role {
	case entity.RolePatient:
		filter.OnlyBookable = true
	case entity.RoleStaff:
		filter.DoctorID = &actor.ID
	case entity.RoleAdmin:
	default:
		return nil, ErrUnknownRole
	}

	windows, err := u.scheduleRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to find schedules: %+v", err)
		return nil, err
	}

	return &dto.ScheduleListResponse{
		Schedules: converter.SchedulesToResponses(windows),
		Total:     len(windows),
	}, nil
}

func (u *doctorScheduleUsecase) CreateSchedule(ctx context.Context, actor entity.Actor, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	var doctorID uuid.UUID
	switch actor.Role {
	case entity.RoleStaff:
		if req.DoctorID != nil && *req.DoctorID != actor.ID {
			return nil, ErrScheduleNotOwned
		}
		doctorID = actor.ID
	case entity.RoleAdmin:
		if req.DoctorID == nil || *req.DoctorID == uuid.Nil {
			return nil, ErrScheduleDoctorNeeded
		}
		doctorID = *req.DoctorID
	case entity.RolePatient:
		return nil, ErrStaffOnly
	default:
		return nil, ErrUnknownRole
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	start, end, err := parseWindowTimes(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	window := &entity.ScheduleWindow{
		DoctorID:    doctorID,
		DayOfWeek:   *req.DayOfWeek,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		window.IsAvailable = *req.IsAvailable
	}

	if err := u.scheduleRepo.Create(ctx, window); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrScheduleDayTaken
		}
		u.log.Warnf("Failed to create schedule: %+v", err)
		return nil, err
	}
	window.Doctor = *doctor

	u.availabilityService.Invalidate(ctx, doctorID)

	response := converter.ScheduleToResponse(window)
	u.auditService.LogCreate(ctx, &actor.ID, entity.AuditActionScheduleCreate, "schedule", strconv.Itoa(window.ID), response)
	u.log.Infof("Schedule %d created for doctor %s", window.ID, doctorID)

	return response, nil
}

func (u *doctorScheduleUsecase) UpdateSchedule(ctx context.Context, actor entity.Actor, scheduleID int, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	window, err := u.findOwned(ctx, actor, scheduleID)
	if err != nil {
		return nil, err
	}
	oldValue := converter.ScheduleToResponse(window)

	startText := window.StartTime.String()
	endText := window.EndTime.String()
	if req.StartTime != nil {
		startText = *req.StartTime
	}
	if req.EndTime != nil {
		endText = *req.EndTime
	}
	start, end, err := parseWindowTimes(startText, endText)
	if err != nil {
		return nil, err
	}

	window.StartTime = start
	window.EndTime = end
	if req.DayOfWeek != nil {
		window.DayOfWeek = *req.DayOfWeek
	}
	if req.IsAvailable != nil {
		window.IsAvailable = *req.IsAvailable
	}

	if err := u.scheduleRepo.Update(ctx, window); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrScheduleDayTaken
		}
		u.log.Warnf("Failed to update schedule: %+v", err)
		return nil, err
	}

	u.availabilityService.Invalidate(ctx, window.DoctorID)

	newValue := converter.ScheduleToResponse(window)
	u.auditService.LogUpdate(ctx, &actor.ID, entity.AuditActionScheduleUpdate, "schedule", strconv.Itoa(window.ID), oldValue, newValue)

	return newValue, nil
}

func (u *doctorScheduleUsecase) DeleteSchedule(ctx context.Context, actor entity.Actor, scheduleID int) error {
	window, err := u.findOwned(ctx, actor, scheduleID)
	if err != nil {
		return err
	}

	rows, err := u.scheduleRepo.Delete(ctx, scheduleID)
	if err != nil {
		u.log.Warnf("Failed to delete schedule: %+v", err)
		return err
	}
	if rows == 0 {
		return ErrScheduleNotFound
	}

	u.availabilityService.Invalidate(ctx, window.DoctorID)
	u.auditService.LogDelete(ctx, &actor.ID, entity.AuditActionScheduleDelete, "schedule", strconv.Itoa(scheduleID), converter.ScheduleToResponse(window))

	return nil
}

// findOwned loads a window the actor may edit: the owning doctor's or, for
// admins, any.
func (u *doctorScheduleUsecase) findOwned(ctx context.Context, actor entity.Actor, scheduleID int) (*entity.ScheduleWindow, error) {
	switch actor.Role {
	case entity.RoleStaff, entity.RoleAdmin:
	case entity.RolePatient:
		return nil, ErrStaffOnly
	default:
		return nil, ErrUnknownRole
	}

	window, err := u.scheduleRepo.FindByID(ctx, scheduleID)
	if err != nil {
		u.log.Warnf("Failed to find schedule: %+v", err)
		return nil, err
	}
	if window == nil {
		return nil, ErrScheduleNotFound
	}
	if actor.IsStaff() && window.DoctorID != actor.ID {
		return nil, ErrScheduleNotOwned
	}
	return window, nil
}

func parseWindowTimes(startText, endText string) (entity.ClockTime, entity.ClockTime, error) {
	start, err := entity.ParseClock(startText)
	if err != nil {
		return 0, 0, ErrInvalidTimeFormat
	}
	end, err := entity.ParseClock(endText)
	if err != nil {
		return 0, 0, ErrInvalidTimeFormat
	}
	if start >= end {
		return 0, 0, ErrInvalidTimeRange
	}
	return start, end, nil
}
