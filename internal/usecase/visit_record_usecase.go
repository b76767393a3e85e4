package usecase

import (
	"context"
	"errors"
	"time"

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
	ErrVisitNotCompleted = apperror.Validation("visit records can only be added to attended appointments")
	ErrVisitRecordExists = apperror.Conflict("visit record already exists for this appointment")
)

type VisitRecordUsecase interface {
	CreateVisitRecord(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.CreateVisitRecordRequest) (*dto.VisitRecordResponse, error)
	ListVisitRecords(ctx context.Context, actor entity.Actor) (*dto.VisitRecordListResponse, error)
}

type visitRecordUsecase struct {
	log             *logrus.Logger
	visitRecordRepo repository.VisitRecordRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
	now             service.Clock
}

func NewVisitRecordUsecase(
	log *logrus.Logger,
	visitRecordRepo repository.VisitRecordRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
	now service.Clock,
) VisitRecordUsecase {
	if now == nil {
		now = time.Now
	}
	return &visitRecordUsecase{
		log:             log,
		visitRecordRepo: visitRecordRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
		now:             now,
	}
}

// CreateVisitRecord stores the assigned doctor's notes for an attended
// appointment. One record per appointment.
func (u *visitRecordUsecase) CreateVisitRecord(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.CreateVisitRecordRequest) (*dto.VisitRecordResponse, error) {
	if err := requireRole(actor, entity.RoleStaff); err != nil {
		return nil, err
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil || appointment.DoctorID != actor.ID {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.Status.IsVisitCompleted() {
		return nil, ErrVisitNotCompleted
	}

	existing, err := u.visitRecordRepo.FindByAppointmentID(ctx, appointmentID.String())
	if err != nil {
		u.log.Warnf("Failed to find visit record: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrVisitRecordExists
	}

	record := &entity.VisitRecord{
		AppointmentID: appointment.ID.String(),
		PatientID:     appointment.PatientID.String(),
		DoctorID:      appointment.DoctorID.String(),
		VisitDate:     appointment.AppointmentDate,
		Notes:         req.Notes,
		Prescription:  req.Prescription,
		CreatedAt:     u.now().UTC(),
	}

	if err := u.visitRecordRepo.Create(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrVisitRecordExists
		}
		u.log.Warnf("Failed to create visit record: %+v", err)
		return nil, err
	}

	response := converter.VisitRecordToResponse(record)
	u.auditService.LogCreate(ctx, &actor.ID, entity.AuditActionVisitRecordCreate, "visit_record", response.ID,
		map[string]string{"appointment_id": record.AppointmentID})
	u.log.Infof("Visit record %s added for appointment %s", response.ID, record.AppointmentID)

	return response, nil
}

// ListVisitRecords returns the actor's records, most recent visit first.
func (u *visitRecordUsecase) ListVisitRecords(ctx context.Context, actor entity.Actor) (*dto.VisitRecordListResponse, error) {
	var filter entity.VisitRecordFilter
	switch actor.Role {
	case entity.RolePatient:
		filter.PatientID = actor.ID.String()
	case entity.RoleStaff:
		filter.DoctorID = actor.ID.String()
	case entity.RoleAdmin:
	default:
		return nil, ErrUnknownRole
	}

	records, err := u.visitRecordRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to find visit records: %+v", err)
		return nil, err
	}

	return &dto.VisitRecordListResponse{
		Records: converter.VisitRecordsToResponses(records),
		Total:   len(records),
	}, nil
}
