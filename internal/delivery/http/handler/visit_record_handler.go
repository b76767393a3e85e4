package handler

import (
	"encoding/json"
	"net/http"

	"clinic-appointment/internal/delivery/dto"
	"clinic-appointment/internal/usecase"
	"clinic-appointment/pkg/response"
	"clinic-appointment/pkg/validator"

	"github.com/sirupsen/logrus"
)

type VisitRecordHandler struct {
	log                *logrus.Logger
	visitRecordUsecase usecase.VisitRecordUsecase
	validator          *validator.CustomValidator
}

func NewVisitRecordHandler(log *logrus.Logger, visitRecordUsecase usecase.VisitRecordUsecase, validator *validator.CustomValidator) *VisitRecordHandler {
	return &VisitRecordHandler{
		log:                log,
		visitRecordUsecase: visitRecordUsecase,
		validator:          validator,
	}
}

// CreateVisitRecord stores the treatment notes of an attended appointment
// @Summary Add visit record
// @Tags Visit Records
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.CreateVisitRecordRequest true "Visit Record"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/visit-records [post]
func (h *VisitRecordHandler) CreateVisitRecord(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}
	appointmentID, ok := uuidVar(w, r, "Invalid appointment ID")
	if !ok {
		return
	}

	var req dto.CreateVisitRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.visitRecordUsecase.CreateVisitRecord(r.Context(), actor, appointmentID, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to create visit record")
		return
	}

	response.Success(w, http.StatusCreated, "Visit record created successfully", record)
}

func (h *VisitRecordHandler) ListVisitRecords(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	records, err := h.visitRecordUsecase.ListVisitRecords(r.Context(), actor)
	if err != nil {
		writeError(w, h.log, err, "Failed to get visit records")
		return
	}

	response.Success(w, http.StatusOK, "Visit records retrieved successfully", records)
}
