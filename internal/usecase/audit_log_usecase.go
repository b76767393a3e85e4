package usecase

import (
	"context"

	"clinic-appointment/internal/converter"
	"clinic-appointment/internal/delivery/dto"
	"clinic-appointment/internal/domain/entity"
	"clinic-appointment/internal/domain/repository"
	"clinic-appointment/pkg/apperror"

	"github.com/sirupsen/logrus"
)

const (
	defaultAuditPageSize = 20
	maxAuditPageSize     = 100
)

var (
	ErrAuditLogNotFound = apperror.NotFound("audit log not found")
)

type AuditLogUsecase interface {
	GetAllAuditLogs(ctx context.Context, actor entity.Actor, page, limit int) (*dto.AuditLogListResponse, error)
	GetAuditLog(ctx context.Context, actor entity.Actor, id int64) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

// GetAllAuditLogs pages through the trail, newest first. Out of range
// paging values fall back to the defaults.
func (u *auditLogUsecase) GetAllAuditLogs(ctx context.Context, actor entity.Actor, page, limit int) (*dto.AuditLogListResponse, error) {
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxAuditPageSize {
		limit = defaultAuditPageSize
	}

	logs, total, err := u.auditLogRepo.FindAll(ctx, limit, (page-1)*limit)
	if err != nil {
		u.log.Warnf("Failed to find all audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Page:  page,
		Limit: limit,
		Total: total,
	}, nil
}

func (u *auditLogUsecase) GetAuditLog(ctx context.Context, actor entity.Actor, id int64) (*dto.AuditLogResponse, error) {
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}

	auditLog, err := u.auditLogRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find audit log: %+v", err)
		return nil, err
	}
	if auditLog == nil {
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(auditLog), nil
}
