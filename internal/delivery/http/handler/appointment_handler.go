package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"clinic-appointment/internal/delivery/dto"
	"clinic-appointment/internal/domain/entity"
	"clinic-appointment/internal/usecase"
	"clinic-appointment/pkg/response"
	"clinic-appointment/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AppointmentHandler struct {
	log                *logrus.Logger
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(log *logrus.Logger, appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		log:                log,
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// CreateAppointment books a slot for the calling patient
// @Summary Book appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Create Appointment Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.CreateAppointment(r.Context(), actor, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to create appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

// ListAppointments lists the appointments in the caller's scope
// @Summary List appointments
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param status query string false "Status filter"
// @Param date query string false "Date filter (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /appointments [get]
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	query := dto.AppointmentListQuery{
		Status: r.URL.Query().Get("status"),
		Date:   r.URL.Query().Get("date"),
	}
	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointments, err := h.appointmentUsecase.ListAppointments(r.Context(), actor, &query)
	if err != nil {
		writeError(w, h.log, err, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}
	appointmentID, ok := uuidVar(w, r, "Invalid appointment ID")
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.GetAppointment(r.Context(), actor, appointmentID)
	if err != nil {
		writeError(w, h.log, err, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) UpcomingAppointments(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	appointments, err := h.appointmentUsecase.UpcomingAppointments(r.Context(), actor)
	if err != nil {
		writeError(w, h.log, err, "Failed to get upcoming appointments")
		return
	}

	response.Success(w, http.StatusOK, "Upcoming appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) AppointmentHistory(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	query := dto.AppointmentHistoryQuery{
		Type:   r.URL.Query().Get("type"),
		Status: r.URL.Query().Get("status"),
	}
	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	history, err := h.appointmentUsecase.AppointmentHistory(r.Context(), actor, &query)
	if err != nil {
		writeError(w, h.log, err, "Failed to get appointment history")
		return
	}

	response.Success(w, http.StatusOK, "Appointment history retrieved successfully", history)
}

func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.appointmentUsecase.CancelAppointment, "Appointment cancelled successfully")
}

func (h *AppointmentHandler) MarkAttended(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.appointmentUsecase.MarkAttended, "Appointment marked as attended")
}

func (h *AppointmentHandler) MarkMissed(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.appointmentUsecase.MarkMissed, "Appointment marked as missed")
}

type transitionFunc func(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)

func (h *AppointmentHandler) transition(w http.ResponseWriter, r *http.Request, apply transitionFunc, message string) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}
	appointmentID, ok := uuidVar(w, r, "Invalid appointment ID")
	if !ok {
		return
	}

	appointment, err := apply(r.Context(), actor, appointmentID)
	if err != nil {
		writeError(w, h.log, err, "Failed to update appointment")
		return
	}

	response.Success(w, http.StatusOK, message, appointment)
}

// UpdateStatus lets the assigned doctor set the status and notes
// @Summary Update appointment status
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.UpdateAppointmentStatusRequest true "Status Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}
	appointmentID, ok := uuidVar(w, r, "Invalid appointment ID")
	if !ok {
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateStatus(r.Context(), actor, appointmentID, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to update appointment status")
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", appointment)
}

// Report summarises appointments for admins
// @Summary Appointment report
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/reports/appointments [get]
func (h *AppointmentHandler) Report(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	report, err := h.appointmentUsecase.Report(r.Context(), actor)
	if err != nil {
		writeError(w, h.log, err, "Failed to build appointment report")
		return
	}

	response.Success(w, http.StatusOK, "Appointment report retrieved successfully", report)
}
