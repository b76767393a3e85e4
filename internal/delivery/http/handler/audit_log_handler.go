package handler

import (
	"net/http"
	"strconv"

	"clinic-appointment/internal/usecase"
	"clinic-appointment/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type AuditLogHandler struct {
	log             *logrus.Logger
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(log *logrus.Logger, auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		log:             log,
		auditLogUsecase: auditLogUsecase,
	}
}

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	auditLogID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid audit log ID", nil)
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), actor, auditLogID)
	if err != nil {
		writeError(w, h.log, err, "Failed to get audit log")
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
}

// GetAllAuditLogs pages through the audit trail, newest first.
// Unparseable page or limit values fall back to the defaults.
func (h *AuditLogHandler) GetAllAuditLogs(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.auditLogUsecase.GetAllAuditLogs(r.Context(), actor, page, limit)
	if err != nil {
		writeError(w, h.log, err, "Failed to get audit logs")
		return
	}

	totalPages := int((result.Total + int64(result.Limit) - 1) / int64(result.Limit))
	response.SuccessWithMeta(w, http.StatusOK, "Audit logs retrieved successfully", result.Logs, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		Total:      result.Total,
		TotalPages: totalPages,
	})
}
