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

type DoctorHandler struct {
	log           *logrus.Logger
	doctorUsecase usecase.DoctorProfileUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(log *logrus.Logger, doctorUsecase usecase.DoctorProfileUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		log:           log,
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

// ListDoctors returns the doctors visible to the caller
// @Summary List doctors
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctors [get]
func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	doctors, err := h.doctorUsecase.ListDoctors(r.Context(), actor)
	if err != nil {
		writeError(w, h.log, err, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// GetDoctor returns one doctor
// @Summary Get doctor
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id} [get]
func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}
	doctorID, ok := uuidVar(w, r, "Invalid doctor ID")
	if !ok {
		return
	}

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), actor, doctorID)
	if err != nil {
		writeError(w, h.log, err, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

// UpdateOwnProfile upserts the calling doctor's profile
// @Summary Update own doctor profile
// @Tags Doctors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateDoctorProfileRequest true "Doctor Profile"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /doctors/me [put]
func (h *DoctorHandler) UpdateOwnProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req dto.UpdateDoctorProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.UpdateOwnProfile(r.Context(), actor, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to update doctor profile")
		return
	}

	response.Success(w, http.StatusOK, "Doctor profile updated successfully", doctor)
}

// DeleteDoctor deactivates a doctor and removes their schedule
// @Summary Delete doctor
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/doctors/{id} [delete]
func (h *DoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}
	doctorID, ok := uuidVar(w, r, "Invalid doctor ID")
	if !ok {
		return
	}

	if err := h.doctorUsecase.DeleteDoctor(r.Context(), actor, doctorID); err != nil {
		writeError(w, h.log, err, "Failed to delete doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
}
