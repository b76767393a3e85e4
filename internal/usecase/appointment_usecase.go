package usecase

import (
	"context"
	"errors"

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
	ErrAppointmentNotFound   = apperror.NotFound("appointment not found")
	ErrAppointmentInPast     = apperror.Validation("cannot book an appointment in the past")
	ErrSlotUnavailable       = apperror.Conflict("the selected time slot is not available")
	ErrAlreadyCancelled      = apperror.Conflict("appointment is already cancelled")
	ErrAppointmentClosed     = apperror.Conflict("appointment status can no longer change")
	ErrConcurrentUpdate      = apperror.Conflict("appointment was changed by another request")
	ErrAppointmentNotStarted = apperror.Validation("appointment has not taken place yet")
	ErrUpcomingInPast        = apperror.Validation("cannot set a past appointment to upcoming")
	ErrInvalidStatus         = apperror.Validation("invalid appointment status")
	ErrDoctorCannotCancel    = apperror.Permission("doctors cannot cancel appointments")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, actor entity.Actor, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	ListAppointments(ctx context.Context, actor entity.Actor, query *dto.AppointmentListQuery) (*dto.AppointmentListResponse, error)
	GetAppointment(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	UpcomingAppointments(ctx context.Context, actor entity.Actor) (*dto.AppointmentListResponse, error)
	AppointmentHistory(ctx context.Context, actor entity.Actor, query *dto.AppointmentHistoryQuery) (*dto.AppointmentHistoryResponse, error)
	CancelAppointment(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	MarkAttended(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	MarkMissed(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	Report(ctx context.Context, actor entity.Actor) (*dto.AppointmentReportResponse, error)
}

type appointmentUsecase struct {
	log                 *logrus.Logger
	appointmentRepo     repository.AppointmentRepository
	doctorProfileRepo   repository.DoctorProfileRepository
	availabilityService *service.AvailabilityService
	auditService        service.AuditService
	metrics             *service.BookingMetrics
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	availabilityService *service.AvailabilityService,
	auditService service.AuditService,
	metrics *service.BookingMetrics,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:                 log,
		appointmentRepo:     appointmentRepo,
		doctorProfileRepo:   doctorProfileRepo,
		availabilityService: availabilityService,
		auditService:        auditService,
		metrics:             metrics,
	}
}

// CreateAppointment books a slot for the calling patient.
//
// The availability check reads the ledger directly; two requests can still
// pass it together, and the partial unique index on the appointments table
// decides which insert wins.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, actor entity.Actor, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if err := requireRole(actor, entity.RolePatient); err != nil {
		return nil, err
	}

	date, err := entity.ParseDate(req.AppointmentDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	at, err := entity.ParseClock(req.AppointmentTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}

	now := u.availabilityService.Now()
	if at.On(date, u.availabilityService.Location()).Before(now) {
		return nil, ErrAppointmentInPast
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(ctx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil || !doctor.Bookable() {
		return nil, ErrDoctorNotFound
	}

	available, err := u.availabilityService.IsSlotAvailable(ctx, req.DoctorID, date, at)
	if err != nil {
		return nil, err
	}
	if !available {
		u.metrics.BookingConflict()
		return nil, ErrSlotUnavailable
	}

	appointment := &entity.Appointment{
		PatientID:       actor.ID,
		DoctorID:        req.DoctorID,
		AppointmentDate: date,
		AppointmentTime: at,
		Status:          entity.AppointmentStatusUpcoming,
		Reason:          req.Reason,
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			u.metrics.BookingConflict()
			return nil, ErrSlotUnavailable
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}
	appointment.Doctor = doctor.User

	u.availabilityService.Invalidate(ctx, appointment.DoctorID)
	u.metrics.AppointmentCreated()

	response := converter.AppointmentToResponse(appointment)
	u.auditService.LogCreate(ctx, &actor.ID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), response)
	u.log.Infof("Appointment %s booked with doctor %s on %s at %s", appointment.ID, appointment.DoctorID, req.AppointmentDate, at)

	return response, nil
}

// ListAppointments returns the actor's appointments, newest first.
func (u *appointmentUsecase) ListAppointments(ctx context.Context, actor entity.Actor, query *dto.AppointmentListQuery) (*dto.AppointmentListResponse, error) {
	filter, err := scopeFilter(actor)
	if err != nil {
		return nil, err
	}

	if query != nil {
		if query.Status != "" {
			status, err := parseStatus(query.Status)
			if err != nil {
				return nil, err
			}
			filter.Status = &status
		}
		if query.Date != "" {
			date, err := entity.ParseDate(query.Date)
			if err != nil {
				return nil, ErrInvalidDateFormat
			}
			filter.Date = &date
		}
	}

	appointments, err := u.appointmentRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.findVisible(ctx, actor, appointmentID)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(appointment), nil
}

// UpcomingAppointments lists non-cancelled appointments starting now or
// later, soonest first.
func (u *appointmentUsecase) UpcomingAppointments(ctx context.Context, actor entity.Actor) (*dto.AppointmentListResponse, error) {
	filter, err := scopeFilter(actor)
	if err != nil {
		return nil, err
	}

	now := u.availabilityService.Now()
	today := entity.DateOf(now)
	filter.FromDate = &today
	filter.ExcludeStatus = []entity.AppointmentStatus{entity.AppointmentStatusCancelled}
	filter.Ascending = true

	appointments, err := u.appointmentRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to find upcoming appointments: %+v", err)
		return nil, err
	}

	upcoming := make([]entity.Appointment, 0, len(appointments))
	for _, appointment := range appointments {
		if !appointment.IsPast(now) {
			upcoming = append(upcoming, appointment)
		}
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(upcoming),
		Total:        len(upcoming),
	}, nil
}

// AppointmentHistory splits the actor's appointments around now. query.Type
// selects one partition; empty or "all" returns every partition.
func (u *appointmentUsecase) AppointmentHistory(ctx context.Context, actor entity.Actor, query *dto.AppointmentHistoryQuery) (*dto.AppointmentHistoryResponse, error) {
	filter, err := scopeFilter(actor)
	if err != nil {
		return nil, err
	}

	historyType := "all"
	if query != nil {
		if query.Type != "" {
			historyType = query.Type
		}
		if query.Status != "" {
			status, err := parseStatus(query.Status)
			if err != nil {
				return nil, err
			}
			filter.Status = &status
		}
	}

	appointments, err := u.appointmentRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointment history: %+v", err)
		return nil, err
	}

	now := u.availabilityService.Now()
	var upcoming, past []entity.Appointment
	for _, appointment := range appointments {
		if appointment.IsPast(now) {
			past = append(past, appointment)
		} else {
			upcoming = append(upcoming, appointment)
		}
	}

	response := &dto.AppointmentHistoryResponse{}
	switch historyType {
	case "upcoming":
		response.Upcoming = converter.AppointmentsToResponses(upcoming)
	case "past":
		response.Past = converter.AppointmentsToResponses(past)
	default:
		response.Upcoming = converter.AppointmentsToResponses(upcoming)
		response.Past = converter.AppointmentsToResponses(past)
		response.All = converter.AppointmentsToResponses(appointments)
	}
	return response, nil
}

// CancelAppointment cancels one of the calling patient's appointments.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	if err := requireRole(actor, entity.RolePatient); err != nil {
		return nil, err
	}

	appointment, err := u.findVisible(ctx, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	if appointment.IsCancelled() {
		return nil, ErrAlreadyCancelled
	}
	if !appointment.Status.CanTransitionTo(entity.AppointmentStatusCancelled) {
		return nil, ErrAppointmentClosed
	}

	return u.transition(ctx, actor, appointment, entity.AppointmentStatusCancelled, nil)
}

func (u *appointmentUsecase) MarkAttended(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.markVisit(ctx, actor, appointmentID, entity.AppointmentStatusAttended, nil)
}

func (u *appointmentUsecase) MarkMissed(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.markVisit(ctx, actor, appointmentID, entity.AppointmentStatusMissed, nil)
}

// UpdateStatus lets the assigned doctor record the visit outcome with
// notes. Setting UPCOMING only updates the notes and is refused once the
// appointment has started.
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	if err := requireRole(actor, entity.RoleStaff); err != nil {
		return nil, err
	}

	status, err := parseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	switch status {
	case entity.AppointmentStatusAttended, entity.AppointmentStatusMissed:
		return u.markVisit(ctx, actor, appointmentID, status, req.Notes)
	case entity.AppointmentStatusCancelled:
		return nil, ErrDoctorCannotCancel
	case entity.AppointmentStatusUpcoming:
		appointment, err := u.findVisible(ctx, actor, appointmentID)
		if err != nil {
			return nil, err
		}
		if appointment.IsPast(u.availabilityService.Now()) {
			return nil, ErrUpcomingInPast
		}
		if appointment.Status != entity.AppointmentStatusUpcoming {
			return nil, ErrAppointmentClosed
		}
		return u.transition(ctx, actor, appointment, status, req.Notes)
	default:
		return nil, ErrInvalidStatus
	}
}

// Report aggregates the whole ledger for admins.
func (u *appointmentUsecase) Report(ctx context.Context, actor entity.Actor) (*dto.AppointmentReportResponse, error) {
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}

	byStatus, err := u.appointmentRepo.CountByStatus(ctx)
	if err != nil {
		u.log.Warnf("Failed to count appointments by status: %+v", err)
		return nil, err
	}

	byDoctor, err := u.appointmentRepo.CountByDoctor(ctx)
	if err != nil {
		u.log.Warnf("Failed to count appointments by doctor: %+v", err)
		return nil, err
	}

	var total int64
	statusCounts := make(map[string]int64, len(byStatus))
	for status, count := range byStatus {
		statusCounts[string(status)] = count
		total += count
	}

	return &dto.AppointmentReportResponse{
		TotalAppointments: total,
		StatusCounts:      statusCounts,
		DoctorCounts:      converter.DoctorCountsToResponses(byDoctor),
	}, nil
}

func (u *appointmentUsecase) markVisit(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, to entity.AppointmentStatus, notes *string) (*dto.AppointmentResponse, error) {
	if err := requireRole(actor, entity.RoleStaff); err != nil {
		return nil, err
	}

	appointment, err := u.findVisible(ctx, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	if !appointment.Status.CanTransitionTo(to) {
		return nil, ErrAppointmentClosed
	}
	if !appointment.IsPast(u.availabilityService.Now()) {
		return nil, ErrAppointmentNotStarted
	}

	return u.transition(ctx, actor, appointment, to, notes)
}

// transition writes the status change conditioned on the status read
// earlier. Zero changed rows means another request moved it first.
func (u *appointmentUsecase) transition(ctx context.Context, actor entity.Actor, appointment *entity.Appointment, to entity.AppointmentStatus, notes *string) (*dto.AppointmentResponse, error) {
	from := appointment.Status

	rows, err := u.appointmentRepo.UpdateStatus(ctx, appointment.ID, from, to, notes)
	if err != nil {
		u.log.Warnf("Failed to update appointment %s status: %+v", appointment.ID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrConcurrentUpdate
	}

	appointment.Status = to
	if notes != nil {
		appointment.Notes = *notes
	}

	if from != to {
		u.metrics.Transition(to)
	}
	if to == entity.AppointmentStatusCancelled {
		u.availabilityService.Invalidate(ctx, appointment.DoctorID)
	}

	action := entity.AuditActionAppointmentStatus
	if to == entity.AppointmentStatusCancelled {
		action = entity.AuditActionAppointmentCancel
	}
	u.auditService.LogUpdate(ctx, &actor.ID, action, "appointment", appointment.ID.String(),
		map[string]string{"status": string(from)}, map[string]string{"status": string(to)})
	u.log.Infof("Appointment %s moved from %s to %s by %s", appointment.ID, from, to, actor.ID)

	return converter.AppointmentToResponse(appointment), nil
}

// findVisible loads an appointment inside the actor's scope. Appointments
// outside it are reported as missing.
func (u *appointmentUsecase) findVisible(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	switch actor.Role {
	case entity.RolePatient:
		if appointment.PatientID != actor.ID {
			return nil, ErrAppointmentNotFound
		}
	case entity.RoleStaff:
		if appointment.DoctorID != actor.ID {
			return nil, ErrAppointmentNotFound
		}
	case entity.RoleAdmin:
	default:
		return nil, ErrUnknownRole
	}
	return appointment, nil
}

// scopeFilter restricts ledger queries to what the actor may read.
func scopeFilter(actor entity.Actor) (entity.AppointmentFilter, error) {
	id := actor.ID
	switch actor.Role {
	case entity.RolePatient:
		return entity.AppointmentFilter{PatientID: &id}, nil
	case entity.RoleStaff:
		return entity.AppointmentFilter{DoctorID: &id}, nil
	case entity.RoleAdmin:
		return entity.AppointmentFilter{}, nil
	default:
		return entity.AppointmentFilter{}, ErrUnknownRole
	}
}

func parseStatus(s string) (entity.AppointmentStatus, error) {
	status := entity.AppointmentStatus(s)
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
