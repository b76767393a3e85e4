package usecase

import (
	"context"

	"clinic-appointment/internal/converter"
	"clinic-appointment/internal/delivery/dto"
	"clinic-appointment/internal/domain/entity"
	"clinic-appointment/internal/domain/repository"
	"clinic-appointment/internal/service"
	"clinic-appointment/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrDoctorNotFound         = apperror.NotFound("doctor not found")
	ErrInvalidConsultationFee = apperror.Validation("consultation fee must be a non-negative amount")
)

type DoctorProfileUsecase interface {
	ListDoctors(ctx context.Context, actor entity.Actor) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, actor entity.Actor, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	UpdateOwnProfile(ctx context.Context, actor entity.Actor, req *dto.UpdateDoctorProfileRequest) (*dto.DoctorResponse, error)
	DeleteDoctor(ctx context.Context, actor entity.Actor, doctorID uuid.UUID) error
}

type doctorProfileUsecase struct {
	transactor          repository.Transactor
	log                 *logrus.Logger
	userRepo            repository.UserRepository
	doctorProfileRepo   repository.DoctorProfileRepository
	branchRepo          repository.BranchRepository
	availabilityService *service.AvailabilityService
	tokenStore          *service.TokenStore
	auditService        service.AuditService
}

func NewDoctorProfileUsecase(
	transactor repository.Transactor,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	branchRepo repository.BranchRepository,
	availabilityService *service.AvailabilityService,
	tokenStore *service.TokenStore,
	auditService service.AuditService,
) DoctorProfileUsecase {
	return &doctorProfileUsecase{
		transactor:          transactor,
		log:                 log,
		userRepo:            userRepo,
		doctorProfileRepo:   doctorProfileRepo,
		branchRepo:          branchRepo,
		availabilityService: availabilityService,
		tokenStore:          tokenStore,
		auditService:        auditService,
	}
}

// ListDoctors returns bookable doctors to patients, the caller's own
// profile to staff and every doctor to admins.
func (u *doctorProfileUsecase) ListDoctors(ctx context.Context, actor entity.Actor) (*dto.DoctorListResponse, error) {
	var profiles []entity.DoctorProfile

	switch actor.Role {
	case entity.RolePatient, entity.RoleAdmin:
		found, err := u.doctorProfileRepo.FindAll(ctx, repository.DoctorFilter{OnlyBookable: actor.IsPatient()})
		if err != nil {
			u.log.Warnf("Failed to find doctors: %+v", err)
			return nil, err
		}
		profiles = found
	case entity.RoleStaff:
		profile, err := u.doctorProfileRepo.FindByUserID(ctx, actor.ID)
		if err != nil {
			u.log.Warnf("Failed to find doctor profile: %+v", err)
			return nil, err
		}
		if profile != nil {
			profiles = append(profiles, *profile)
		}
	default:
		return nil, ErrUnknownRole
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorProfilesToResponses(profiles),
		Total:   len(profiles),
	}, nil
}

func (u *doctorProfileUsecase) GetDoctor(ctx context.Context, actor entity.Actor, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	profile, err := u.doctorProfileRepo.FindByUserID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil || profile.User.Role != entity.RoleStaff {
		return nil, ErrDoctorNotFound
	}

	switch actor.Role {
	case entity.RolePatient:
		if !profile.Bookable() {
			return nil, ErrDoctorNotFound
		}
	case entity.RoleStaff:
		if profile.UserID != actor.ID {
			return nil, ErrDoctorNotFound
		}
	case entity.RoleAdmin:
	default:
		return nil, ErrUnknownRole
	}

	return converter.DoctorProfileToResponse(profile), nil
}

// UpdateOwnProfile creates the caller's profile when missing and applies
// the non-nil request fields.
func (u *doctorProfileUsecase) UpdateOwnProfile(ctx context.Context, actor entity.Actor, req *dto.UpdateDoctorProfileRequest) (*dto.DoctorResponse, error) {
	if err := requireRole(actor, entity.RoleStaff); err != nil {
		return nil, err
	}

	profile, err := u.doctorProfileRepo.FindByUserID(ctx, actor.ID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}

	isNew := profile == nil
	if isNew {
		user, err := u.userRepo.FindByID(ctx, actor.ID)
		if err != nil {
			u.log.Warnf("Failed to find user: %+v", err)
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}
		profile = &entity.DoctorProfile{UserID: actor.ID, IsAvailable: true, User: *user}
	}
	oldValue := converter.DoctorProfileToResponse(profile)

	if req.BranchID != nil {
		if err := u.assignBranch(ctx, profile, *req.BranchID); err != nil {
			return nil, err
		}
	}
	if req.Specialization != nil {
		profile.Specialization = *req.Specialization
	}
	if req.Biography != nil {
		profile.Biography = *req.Biography
	}
	if req.YearsOfExperience != nil {
		profile.YearsOfExperience = *req.YearsOfExperience
	}
	if req.ConsultationFee != nil {
		fee, err := parseConsultationFee(*req.ConsultationFee)
		if err != nil {
			return nil, err
		}
		profile.ConsultationFee = fee
	}
	if req.IsAvailable != nil {
		profile.IsAvailable = *req.IsAvailable
	}

	if isNew {
		err = u.doctorProfileRepo.Create(ctx, profile)
	} else {
		err = u.doctorProfileRepo.Update(ctx, profile)
	}
	if err != nil {
		u.log.Warnf("Failed to save doctor profile: %+v", err)
		return nil, err
	}

	u.availabilityService.Invalidate(ctx, actor.ID)

	newValue := converter.DoctorProfileToResponse(profile)
	u.auditService.LogUpdate(ctx, &actor.ID, entity.AuditActionDoctorUpdate, "doctor_profile", actor.ID.String(), oldValue, newValue)

	return newValue, nil
}

// DeleteDoctor deactivates the doctor's account and removes the profile
// together with its schedule windows. Appointments are kept.
func (u *doctorProfileUsecase) DeleteDoctor(ctx context.Context, actor entity.Actor, doctorID uuid.UUID) error {
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return err
	}

	var oldValue *dto.DoctorResponse
	err := u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		profile, err := u.doctorProfileRepo.FindByUserID(ctx, doctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor profile: %+v", err)
			return err
		}
		if profile == nil {
			return ErrDoctorNotFound
		}
		oldValue = converter.DoctorProfileToResponse(profile)

		user := profile.User
		inactive := false
		user.IsActive = &inactive
		if err := u.userRepo.Update(ctx, &user); err != nil {
			u.log.Warnf("Failed to deactivate user: %+v", err)
			return err
		}

		rows, err := u.doctorProfileRepo.Delete(ctx, doctorID)
		if err != nil {
			u.log.Warnf("Failed to delete doctor profile: %+v", err)
			return err
		}
		if rows == 0 {
			return ErrDoctorNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.availabilityService.Invalidate(ctx, doctorID)
	if err := u.tokenStore.RevokeAll(ctx, doctorID); err != nil {
		u.log.Warnf("Failed to revoke tokens of doctor %s: %+v", doctorID, err)
	}

	u.auditService.LogDelete(ctx, &actor.ID, entity.AuditActionDoctorDelete, "doctor_profile", doctorID.String(), oldValue)
	u.log.Infof("Doctor %s removed by admin %s", doctorID, actor.ID)
	return nil
}

// assignBranch attaches the profile to an open branch, or detaches it
// when branchID is 0.
func (u *doctorProfileUsecase) assignBranch(ctx context.Context, profile *entity.DoctorProfile, branchID int) error {
	if branchID == 0 {
		profile.BranchID = nil
		profile.Branch = nil
		return nil
	}

	branch, err := u.branchRepo.FindByID(ctx, branchID)
	if err != nil {
		u.log.Warnf("Failed to find branch: %+v", err)
		return err
	}
	if branch == nil || !branch.IsActive {
		return ErrUnknownBranch
	}
	profile.BranchID = &branch.ID
	profile.Branch = branch
	return nil
}

func parseConsultationFee(s string) (decimal.Decimal, error) {
	fee, err := decimal.NewFromString(s)
	if err != nil || fee.IsNegative() {
		return decimal.Zero, ErrInvalidConsultationFee
	}
	return fee.Round(2), nil
}
