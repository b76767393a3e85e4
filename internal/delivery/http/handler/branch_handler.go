package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-appointment/internal/delivery/dto"
	"clinic-appointment/internal/usecase"
	"clinic-appointment/pkg/response"
	"clinic-appointment/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type BranchHandler struct {
	log           *logrus.Logger
	branchUsecase usecase.BranchUsecase
	validator     *validator.CustomValidator
}

func NewBranchHandler(log *logrus.Logger, branchUsecase usecase.BranchUsecase, validator *validator.CustomValidator) *BranchHandler {
	return &BranchHandler{
		log:           log,
		branchUsecase: branchUsecase,
		validator:     validator,
	}
}

// ListBranches returns the clinic branches
// @Summary List branches
// @Tags Branches
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /branches [get]
func (h *BranchHandler) ListBranches(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	branches, err := h.branchUsecase.ListBranches(r.Context(), actor)
	if err != nil {
		writeError(w, h.log, err, "Failed to get branches")
		return
	}

	response.Success(w, http.StatusOK, "Branches retrieved successfully", branches)
}

func (h *BranchHandler) GetBranch(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}
	branchID, ok := branchIDVar(w, r)
	if !ok {
		return
	}

	branch, err := h.branchUsecase.GetBranch(r.Context(), actor, branchID)
	if err != nil {
		writeError(w, h.log, err, "Failed to get branch")
		return
	}

	response.Success(w, http.StatusOK, "Branch retrieved successfully", branch)
}

// ListBranchDoctors returns the available doctors of a branch
// @Summary List branch doctors
// @Tags Branches
// @Security BearerAuth
// @Produce json
// @Param id path int true "Branch ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /branches/{id}/doctors [get]
func (h *BranchHandler) ListBranchDoctors(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}
	branchID, ok := branchIDVar(w, r)
	if !ok {
		return
	}

	doctors, err := h.branchUsecase.ListBranchDoctors(r.Context(), actor, branchID)
	if err != nil {
		writeError(w, h.log, err, "Failed to get branch doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *BranchHandler) CreateBranch(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req dto.CreateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	branch, err := h.branchUsecase.CreateBranch(r.Context(), actor, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to create branch")
		return
	}

	response.Success(w, http.StatusCreated, "Branch created successfully", branch)
}

func (h *BranchHandler) UpdateBranch(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}
	branchID, ok := branchIDVar(w, r)
	if !ok {
		return
	}

	var req dto.UpdateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	branch, err := h.branchUsecase.UpdateBranch(r.Context(), actor, branchID, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to update branch")
		return
	}

	response.Success(w, http.StatusOK, "Branch updated successfully", branch)
}

func branchIDVar(w http.ResponseWriter, r *http.Request) (int, bool) {
	branchID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid branch ID", nil)
		return 0, false
	}
	return branchID, true
}
