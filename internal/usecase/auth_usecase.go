package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-appointment/internal/converter"
	"clinic-appointment/internal/delivery/dto"
	"clinic-appointment/internal/domain/entity"
	"clinic-appointment/internal/domain/repository"
	"clinic-appointment/internal/service"
	"clinic-appointment/pkg/apperror"
	"clinic-appointment/pkg/jwt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyExists = apperror.Conflict("email already exists")
	ErrUserNotFound       = apperror.NotFound("user not found")
	ErrAccountInactive    = apperror.Permission("account is inactive")
	ErrInvalidDateFormat  = apperror.Validation("invalid date format, use YYYY-MM-DD")

	// Authentication failures map to 401 and are matched by the handlers.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

type AuthUsecase interface {
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error)
	RegisterStaff(ctx context.Context, req *dto.RegisterStaffRequest) (*dto.UserResponse, error)
	CreateAdmin(ctx context.Context, req *dto.CreateAdminRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, accessTokenID, refreshToken string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	transactor         repository.Transactor
	log                *logrus.Logger
	userRepo           repository.UserRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
	jwtService         *jwt.JWTService
	tokenStore         *service.TokenStore
	auditService       service.AuditService
	now                func() time.Time
}

func NewAuthUsecase(
	transactor repository.Transactor,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	jwtService *jwt.JWTService,
	tokenStore *service.TokenStore,
	auditService service.AuditService,
	now func() time.Time,
) AuthUsecase {
	return &authUsecase{
		transactor:         transactor,
		log:                log,
		userRepo:           userRepo,
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
		jwtService:         jwtService,
		tokenStore:         tokenStore,
		auditService:       auditService,
		now:                now,
	}
}

func (u *authUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error) {
	profile := &entity.PatientProfile{
		Gender:                req.Gender,
		Address:               req.Address,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		Allergies:             req.Allergies,
		MedicalConditions:     req.MedicalConditions,
		CurrentMedications:    req.CurrentMedications,
		InsuranceProvider:     req.InsuranceProvider,
		InsuranceNumber:       req.InsuranceNumber,
		ConsentTreatment:      req.ConsentTreatment,
		ConsentDataSharing:    req.ConsentDataSharing,
	}
	if req.DateOfBirth != "" {
		dob, err := entity.ParseDate(req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		profile.DateOfBirth = &dob
	}

	user, err := u.newUser(req.Email, req.Password, req.FullName, req.PhoneNumber, entity.RolePatient)
	if err != nil {
		return nil, err
	}

	err = u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.createUser(ctx, user); err != nil {
			return err
		}

		code, err := u.patientProfileRepo.NextPatientCode(ctx, u.now())
		if err != nil {
			u.log.Warnf("Failed to allocate patient code: %+v", err)
			return err
		}

		profile.UserID = user.ID
		profile.PatientCode = code
		if err := u.patientProfileRepo.Create(ctx, profile); err != nil {
			u.log.Warnf("Failed to create patient profile: %+v", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Registered patient %s as %s", user.ID, profile.PatientCode)
	user.PatientProfile = profile
	response := converter.UserToResponse(user)
	u.auditService.LogCreate(ctx, &user.ID, entity.AuditActionUserRegister, "user", user.ID.String(), response)
	return response, nil
}

// RegisterStaff creates a doctor account with its profile. The profile can
// be completed later by the doctor.
func (u *authUsecase) RegisterStaff(ctx context.Context, req *dto.RegisterStaffRequest) (*dto.UserResponse, error) {
	fee := decimal.Zero
	if req.ConsultationFee != "" {
		parsed, err := parseConsultationFee(req.ConsultationFee)
		if err != nil {
			return nil, err
		}
		fee = parsed
	}

	user, err := u.newUser(req.Email, req.Password, req.FullName, req.PhoneNumber, entity.RoleStaff)
	if err != nil {
		return nil, err
	}

	profile := &entity.DoctorProfile{
		Specialization:    req.Specialization,
		Biography:         req.Biography,
		YearsOfExperience: req.YearsOfExperience,
		ConsultationFee:   fee,
		IsAvailable:       true,
	}

	err = u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.createUser(ctx, user); err != nil {
			return err
		}

		profile.UserID = user.ID
		if err := u.doctorProfileRepo.Create(ctx, profile); err != nil {
			u.log.Warnf("Failed to create doctor profile: %+v", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Registered doctor %s", user.ID)
	user.DoctorProfile = profile
	response := converter.UserToResponse(user)
	u.auditService.LogCreate(ctx, &user.ID, entity.AuditActionUserRegister, "user", user.ID.String(), response)
	return response, nil
}

// CreateAdmin is only reachable from the command line.
func (u *authUsecase) CreateAdmin(ctx context.Context, req *dto.CreateAdminRequest) (*dto.UserResponse, error) {
	user, err := u.newUser(req.Email, req.Password, req.FullName, "", entity.RoleAdmin)
	if err != nil {
		return nil, err
	}

	if err := u.createUser(ctx, user); err != nil {
		return nil, err
	}

	u.log.Infof("Created admin %s", user.ID)
	response := converter.UserToResponse(user)
	u.auditService.LogCreate(ctx, nil, entity.AuditActionUserRegister, "user", user.ID.String(), response)
	return response, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.Active() {
		return nil, ErrAccountInactive
	}

	tokens, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	u.auditService.LogCreate(ctx, &user.ID, entity.AuditActionUserLogin, "user", user.ID.String(), nil)
	return tokens, nil
}

// Logout revokes the current access token and, when given, the refresh
// token issued with it.
func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID, refreshToken string) error {
	if _, err := u.tokenStore.Revoke(ctx, jwt.AccessToken, userID, accessTokenID); err != nil {
		u.log.Warnf("Failed to revoke access token: %+v", err)
		return err
	}

	if refreshToken != "" {
		claims, err := u.jwtService.ValidateToken(refreshToken)
		if err == nil && claims.TokenType == jwt.RefreshToken && claims.UserID == userID {
			if _, err := u.tokenStore.Revoke(ctx, jwt.RefreshToken, userID, claims.TokenID); err != nil {
				u.log.Warnf("Failed to revoke refresh token: %+v", err)
				return err
			}
		}
	}

	u.auditService.LogDelete(ctx, &userID, entity.AuditActionUserLogout, "user", userID.String(), nil)
	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	// Deleting the old id makes a refresh token single use
	revoked, err := u.tokenStore.Revoke(ctx, jwt.RefreshToken, claims.UserID, claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to revoke refresh token: %+v", err)
		return nil, err
	}
	if !revoked {
		return nil, ErrTokenRevoked
	}

	user, err := u.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	if !user.Active() {
		return nil, ErrAccountInactive
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) newUser(email, password, fullName, phone string, role entity.Role) (*entity.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	active := true
	return &entity.User{
		Email:       normalizeEmail(email),
		Password:    string(hashedPassword),
		FullName:    strings.TrimSpace(fullName),
		PhoneNumber: phone,
		Role:        role,
		IsActive:    &active,
	}, nil
}

func (u *authUsecase) createUser(ctx context.Context, user *entity.User) error {
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return err
	}
	return nil
}

func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, user.Role.String())
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(user.ID, user.Email, user.Role.String())
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.tokenStore.Save(ctx, jwt.AccessToken, user.ID, accessTokenID, u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}

	if err := u.tokenStore.Save(ctx, jwt.RefreshToken, user.ID, refreshTokenID, u.jwtService.GetRefreshExpiry()); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
