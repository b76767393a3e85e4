package usecase

import (
	"context"
	"strconv"

	"clinic-appointment/internal/converter"
	"clinic-appointment/internal/delivery/dto"
	"clinic-appointment/internal/domain/entity"
	"clinic-appointment/internal/domain/repository"
	"clinic-appointment/internal/service"
	"clinic-appointment/pkg/apperror"

	"github.com/sirupsen/logrus"
)

var ErrBranchNotFound = apperror.NotFound("branch not found")

var ErrUnknownBranch = apperror.Validation("branch does not exist").WithFields(map[string]string{
	"branch_id": "branch does not exist or is closed",
})

type BranchUsecase interface {
	ListBranches(ctx context.Context, actor entity.Actor) (*dto.BranchListResponse, error)
	GetBranch(ctx context.Context, actor entity.Actor, branchID int) (*dto.BranchResponse, error)
	ListBranchDoctors(ctx context.Context, actor entity.Actor, branchID int) (*dto.DoctorListResponse, error)
	CreateBranch(ctx context.Context, actor entity.Actor, req *dto.CreateBranchRequest) (*dto.BranchResponse, error)
	UpdateBranch(ctx context.Context, actor entity.Actor, branchID int, req *dto.UpdateBranchRequest) (*dto.BranchResponse, error)
}

type branchUsecase struct {
	log               *logrus.Logger
	branchRepo        repository.BranchRepository
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      service.AuditService
}

func NewBranchUsecase(
	log *logrus.Logger,
	branchRepo repository.BranchRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
) BranchUsecase {
	return &branchUsecase{
		log:               log,
		branchRepo:        branchRepo,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
	}
}

// ListBranches returns open branches. Admins also see closed ones.
func (u *branchUsecase) ListBranches(ctx context.Context, actor entity.Actor) (*dto.BranchListResponse, error) {
	branches, err := u.branchRepo.FindAll(ctx, !actor.IsAdmin())
	if err != nil {
		u.log.Warnf("Failed to find branches: %+v", err)
		return nil, err
	}

	return &dto.BranchListResponse{
		Branches: converter.BranchesToResponses(branches),
		Total:    len(branches),
	}, nil
}

func (u *branchUsecase) GetBranch(ctx context.Context, actor entity.Actor, branchID int) (*dto.BranchResponse, error) {
	branch, err := u.visibleBranch(ctx, actor, branchID)
	if err != nil {
		return nil, err
	}
	return converter.BranchToResponse(branch), nil
}

// ListBranchDoctors returns the bookable doctors working at the branch.
func (u *branchUsecase) ListBranchDoctors(ctx context.Context, actor entity.Actor, branchID int) (*dto.DoctorListResponse, error) {
	branch, err := u.visibleBranch(ctx, actor, branchID)
	if err != nil {
		return nil, err
	}

	profiles, err := u.doctorProfileRepo.FindAll(ctx, repository.DoctorFilter{OnlyBookable: true, BranchID: &branch.ID})
	if err != nil {
		u.log.Warnf("Failed to find doctors of branch %d: %+v", branch.ID, err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorProfilesToResponses(profiles),
		Total:   len(profiles),
	}, nil
}

func (u *branchUsecase) CreateBranch(ctx context.Context, actor entity.Actor, req *dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}

	branch := &entity.Branch{
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		Email:    req.Email,
		IsActive: true,
	}
	if err := u.branchRepo.Create(ctx, branch); err != nil {
		u.log.Warnf("Failed to create branch: %+v", err)
		return nil, err
	}

	response := converter.BranchToResponse(branch)
	u.auditService.LogCreate(ctx, &actor.ID, entity.AuditActionBranchCreate, "branch", strconv.Itoa(branch.ID), response)
	return response, nil
}

func (u *branchUsecase) UpdateBranch(ctx context.Context, actor entity.Actor, branchID int, req *dto.UpdateBranchRequest) (*dto.BranchResponse, error) {
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}

	branch, err := u.branchRepo.FindByID(ctx, branchID)
	if err != nil {
		u.log.Warnf("Failed to find branch: %+v", err)
		return nil, err
	}
	if branch == nil {
		return nil, ErrBranchNotFound
	}
	oldValue := converter.BranchToResponse(branch)

	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.Phone != nil {
		branch.Phone = *req.Phone
	}
	if req.Email != nil {
		branch.Email = *req.Email
	}
	if req.IsActive != nil {
		branch.IsActive = *req.IsActive
	}

	if err := u.branchRepo.Update(ctx, branch); err != nil {
		u.log.Warnf("Failed to update branch: %+v", err)
		return nil, err
	}

	newValue := converter.BranchToResponse(branch)
	u.auditService.LogUpdate(ctx, &actor.ID, entity.AuditActionBranchUpdate, "branch", strconv.Itoa(branch.ID), oldValue, newValue)
	return newValue, nil
}

// visibleBranch hides closed branches from everyone but admins.
func (u *branchUsecase) visibleBranch(ctx context.Context, actor entity.Actor, branchID int) (*entity.Branch, error) {
	branch, err := u.branchRepo.FindByID(ctx, branchID)
	if err != nil {
		u.log.Warnf("Failed to find branch: %+v", err)
		return nil, err
	}
	if branch == nil || (!branch.IsActive && !actor.IsAdmin()) {
		return nil, ErrBranchNotFound
	}
	return branch, nil
}
