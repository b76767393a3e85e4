package handler

import (
	"net/http"

	"clinic-appointment/internal/usecase"
	"clinic-appointment/pkg/response"

	"github.com/sirupsen/logrus"
)

// AvailabilityHandler serves the open slots of a doctor.
type AvailabilityHandler struct {
	log                 *logrus.Logger
	availabilityUsecase usecase.AvailabilityUsecase
}

func NewAvailabilityHandler(log *logrus.Logger, availabilityUsecase usecase.AvailabilityUsecase) *AvailabilityHandler {
	return &AvailabilityHandler{
		log:                 log,
		availabilityUsecase: availabilityUsecase,
	}
}

// GetSlots lists the free slots of a doctor on one date
// @Summary Available slots
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /doctors/{id}/slots [get]
func (h *AvailabilityHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := uuidVar(w, r, "Invalid doctor ID")
	if !ok {
		return
	}

	slots, err := h.availabilityUsecase.GetSlots(r.Context(), doctorID, r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, h.log, err, "Failed to get available slots")
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}

// CheckSlot reports whether a single slot can be booked
// @Summary Check slot
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param time query string true "Time (HH:MM)"
// @Success 200 {object} response.Response
// @Router /doctors/{id}/slots/check [get]
func (h *AvailabilityHandler) CheckSlot(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := uuidVar(w, r, "Invalid doctor ID")
	if !ok {
		return
	}

	q := r.URL.Query()
	result, err := h.availabilityUsecase.CheckSlot(r.Context(), doctorID, q.Get("date"), q.Get("time"))
	if err != nil {
		writeError(w, h.log, err, "Failed to check slot")
		return
	}

	response.Success(w, http.StatusOK, "Slot checked successfully", result)
}

// GetAvailabilityRange lists free slots per date over a range
// @Summary Availability range
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /doctors/{id}/availability [get]
func (h *AvailabilityHandler) GetAvailabilityRange(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := uuidVar(w, r, "Invalid doctor ID")
	if !ok {
		return
	}

	q := r.URL.Query()
	availability, err := h.availabilityUsecase.GetAvailabilityRange(r.Context(), doctorID, q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		writeError(w, h.log, err, "Failed to get availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}
