package usecase

import (
	"context"

	"clinic-appointment/internal/converter"
	"clinic-appointment/internal/delivery/dto"
	"clinic-appointment/internal/domain/entity"
	"clinic-appointment/internal/domain/repository"
	"clinic-appointment/internal/service"
	"clinic-appointment/pkg/apperror"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var ErrPatientNotFound = apperror.NotFound("patient profile not found")

var ErrInvalidOldPassword = apperror.Validation("old password is incorrect").WithFields(map[string]string{
	"old_password": "old password is incorrect",
})

type PatientProfileUsecase interface {
	GetSelfProfile(ctx context.Context, actor entity.Actor) (*dto.PatientResponse, error)
	UpdateSelfProfile(ctx context.Context, actor entity.Actor, req *dto.PatientUpdateSelfRequest) (*dto.PatientResponse, error)
}

type patientProfileUsecase struct {
	transactor         repository.Transactor
	log                *logrus.Logger
	userRepo           repository.UserRepository
	patientProfileRepo repository.PatientProfileRepository
	auditService       service.AuditService
}

func NewPatientProfileUsecase(
	transactor repository.Transactor,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientProfileRepo repository.PatientProfileRepository,
	auditService service.AuditService,
) PatientProfileUsecase {
	return &patientProfileUsecase{
		transactor:         transactor,
		log:                log,
		userRepo:           userRepo,
		patientProfileRepo: patientProfileRepo,
		auditService:       auditService,
	}
}

func (u *patientProfileUsecase) GetSelfProfile(ctx context.Context, actor entity.Actor) (*dto.PatientResponse, error) {
	if err := requireRole(actor, entity.RolePatient); err != nil {
		return nil, err
	}

	profile, user, err := u.load(ctx, actor)
	if err != nil {
		return nil, err
	}
	return converter.PatientProfileToResponse(profile, user), nil
}

// UpdateSelfProfile updates the patient's own profile.
//
// Allowed fields: password (with old password verification), phone number,
// address, emergency contact, clinical notes, insurance and consents. Date
// of birth, gender and the patient code are not editable here.
func (u *patientProfileUsecase) UpdateSelfProfile(ctx context.Context, actor entity.Actor, req *dto.PatientUpdateSelfRequest) (*dto.PatientResponse, error) {
	if err := requireRole(actor, entity.RolePatient); err != nil {
		return nil, err
	}

	var oldValue, newValue *dto.PatientResponse
	err := u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		profile, user, err := u.load(ctx, actor)
		if err != nil {
			return err
		}
		oldValue = converter.PatientProfileToResponse(profile, user)

		if req.Password != "" {
			if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
				return ErrInvalidOldPassword
			}

			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
			if err != nil {
				u.log.Warnf("Failed to hash password: %+v", err)
				return err
			}
			user.Password = string(hashedPassword)
		}

		if req.PhoneNumber != nil {
			user.PhoneNumber = *req.PhoneNumber
		}
		applyPatientUpdate(profile, req)

		if err := u.userRepo.Update(ctx, user); err != nil {
			u.log.Warnf("Failed to update user: %+v", err)
			return err
		}

		if err := u.patientProfileRepo.Update(ctx, profile); err != nil {
			u.log.Warnf("Failed to update patient profile: %+v", err)
			return err
		}

		newValue = converter.PatientProfileToResponse(profile, user)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.auditService.LogUpdate(ctx, &actor.ID, entity.AuditActionPatientUpdate, "patient_profile", actor.ID.String(), oldValue, newValue)
	return newValue, nil
}

func (u *patientProfileUsecase) load(ctx context.Context, actor entity.Actor) (*entity.PatientProfile, *entity.User, error) {
	profile, err := u.patientProfileRepo.FindByUserID(ctx, actor.ID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, nil, err
	}
	if profile == nil {
		return nil, nil, ErrPatientNotFound
	}

	user, err := u.userRepo.FindByID(ctx, actor.ID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}
	return profile, user, nil
}

func applyPatientUpdate(profile *entity.PatientProfile, req *dto.PatientUpdateSelfRequest) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&profile.Address, req.Address)
	setString(&profile.EmergencyContactName, req.EmergencyContactName)
	setString(&profile.EmergencyContactPhone, req.EmergencyContactPhone)
	setString(&profile.Allergies, req.Allergies)
	setString(&profile.MedicalConditions, req.MedicalConditions)
	setString(&profile.CurrentMedications, req.CurrentMedications)
	setString(&profile.DentalHistory, req.DentalHistory)
	setString(&profile.InsuranceProvider, req.InsuranceProvider)
	setString(&profile.InsuranceNumber, req.InsuranceNumber)

	if req.ConsentTreatment != nil {
		profile.ConsentTreatment = *req.ConsentTreatment
	}
	if req.ConsentDataSharing != nil {
		profile.ConsentDataSharing = *req.ConsentDataSharing
	}
}
