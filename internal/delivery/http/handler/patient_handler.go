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

type PatientHandler struct {
	log            *logrus.Logger
	patientUsecase usecase.PatientProfileUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(log *logrus.Logger, patientUsecase usecase.PatientProfileUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		log:            log,
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

// GetSelfProfile returns the calling patient's account and clinical profile
// @Summary Get own patient profile
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /patients/me [get]
func (h *PatientHandler) GetSelfProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	patient, err := h.patientUsecase.GetSelfProfile(r.Context(), actor)
	if err != nil {
		writeError(w, h.log, err, "Failed to get patient profile")
		return
	}

	response.Success(w, http.StatusOK, "Patient profile retrieved successfully", patient)
}

// UpdateSelfProfile updates the calling patient's contact and clinical details
// @Summary Update own patient profile
// @Tags Patients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.PatientUpdateSelfRequest true "Patient Update Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /patients/me [put]
func (h *PatientHandler) UpdateSelfProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req dto.PatientUpdateSelfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.UpdateSelfProfile(r.Context(), actor, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to update patient profile")
		return
	}

	response.Success(w, http.StatusOK, "Patient profile updated successfully", patient)
}
