package usecase

import (
	"context"
	"testing"

	"clinic-appointment/internal/delivery/dto"
	"clinic-appointment/internal/domain/entity"
	"clinic-appointment/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDoctors_ScopedByRole(t *testing.T) {
	ctx := context.Background()
	c := newClinic(t, monday)
	lee := c.addDoctor("dr-lee")
	c.addDoctor("dr-kim")
	away := c.addDoctor("dr-away")
	c.doctors.profiles[away.ID].IsAvailable = false
	uc := c.doctorUsecase()

	patientView, err := uc.ListDoctors(ctx, c.addPatient("ann"))
	require.NoError(t, err)
	assert.Equal(t, 2, patientView.Total)

	adminView, err := uc.ListDoctors(ctx, c.addAdmin())
	require.NoError(t, err)
	assert.Equal(t, 3, adminView.Total)

	staffView, err := uc.ListDoctors(ctx, lee)
	require.NoError(t, err)
	require.Equal(t, 1, staffView.Total)
	assert.Equal(t, lee.ID, staffView.Doctors[0].ID)
}

func TestGetDoctor(t *testing.T) {
	ctx := context.Background()
	c := newClinic(t, monday)
	lee := c.addDoctor("dr-lee")
	away := c.addDoctor("dr-away")
	c.doctors.profiles[away.ID].IsAvailable = false
	patient := c.addPatient("ann")
	uc := c.doctorUsecase()

	resp, err := uc.GetDoctor(ctx, patient, lee.ID)
	require.NoError(t, err)
	assert.Equal(t, "dr-lee", resp.FullName)
	assert.Equal(t, "0.00", resp.ConsultationFee)

	_, err = uc.GetDoctor(ctx, patient, away.ID)
	assert.ErrorIs(t, err, ErrDoctorNotFound, "unavailable doctors are hidden from patients")

	_, err = uc.GetDoctor(ctx, lee, away.ID)
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	resp, err = uc.GetDoctor(ctx, c.addAdmin(), away.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsAvailable)

	_, err = uc.GetDoctor(ctx, patient, uuid.New())
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestUpdateOwnProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("updates the given fields", func(t *testing.T) {
		c := newClinic(t, monday)
		doctor := c.addDoctor("dr-lee")

		resp, err := c.doctorUsecase().UpdateOwnProfile(ctx, doctor, &dto.UpdateDoctorProfileRequest{
			Biography:       strPtr("Braces and aligners"),
			ConsultationFee: strPtr("150000.456"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Orthodontics", resp.Specialization)
		assert.Equal(t, "Braces and aligners", resp.Biography)
		assert.Equal(t, "150000.46", resp.ConsultationFee)
		assert.Contains(t, c.audit.actions(), entity.AuditActionDoctorUpdate)
	})

	t.Run("creates a missing profile", func(t *testing.T) {
		c := newClinic(t, monday)
		doctor := c.addUser(entity.RoleStaff, "dr-new").Actor()

		resp, err := c.doctorUsecase().UpdateOwnProfile(ctx, doctor, &dto.UpdateDoctorProfileRequest{
			Specialization: strPtr("Endodontics"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Endodontics", resp.Specialization)
		assert.True(t, resp.IsAvailable)
		assert.Contains(t, c.doctors.profiles, doctor.ID)
	})

	t.Run("going unavailable closes every slot", func(t *testing.T) {
		c := newClinic(t, monday.AddDate(0, 0, -1))
		doctor := c.addDoctor("dr-lee")

		slots, err := c.availability.AvailableSlots(ctx, doctor.ID, monday)
		require.NoError(t, err)
		require.NotEmpty(t, slots)

		_, err = c.doctorUsecase().UpdateOwnProfile(ctx, doctor, &dto.UpdateDoctorProfileRequest{IsAvailable: boolPtr(false)})
		require.NoError(t, err)

		slots, err = c.availability.AvailableSlots(ctx, doctor.ID, monday)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("rejections", func(t *testing.T) {
		c := newClinic(t, monday)
		doctor := c.addDoctor("dr-lee")
		uc := c.doctorUsecase()

		_, err := uc.UpdateOwnProfile(ctx, doctor, &dto.UpdateDoctorProfileRequest{ConsultationFee: strPtr("-5")})
		assert.ErrorIs(t, err, ErrInvalidConsultationFee)

		_, err = uc.UpdateOwnProfile(ctx, c.addPatient("ann"), &dto.UpdateDoctorProfileRequest{})
		assert.ErrorIs(t, err, ErrStaffOnly)
	})
}

func TestDeleteDoctor(t *testing.T) {
	ctx := context.Background()
	c := newClinic(t, monday.AddDate(0, 0, -1))
	doctor := c.addDoctor("dr-lee")
	patient := c.addPatient("ann")
	booked := c.book(patient, doctor, monday, "09:00", entity.AppointmentStatusUpcoming)
	admin := c.addAdmin()
	uc := c.doctorUsecase()

	tokens, err := c.authUsecase().Login(ctx, &dto.LoginRequest{Email: "dr-lee@clinic.test", Password: testPassword})
	require.NoError(t, err)
	claims, err := c.jwtService.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)

	assert.ErrorIs(t, uc.DeleteDoctor(ctx, doctor, doctor.ID), ErrAdminsOnly)
	assert.ErrorIs(t, uc.DeleteDoctor(ctx, admin, uuid.New()), ErrDoctorNotFound)

	require.NoError(t, uc.DeleteDoctor(ctx, admin, doctor.ID))
	assert.Equal(t, 2, c.transactor.calls)

	user, err := c.users.FindByID(ctx, doctor.ID)
	require.NoError(t, err)
	assert.False(t, user.Active())
	assert.NotContains(t, c.doctors.profiles, doctor.ID)

	valid, err := c.tokenStore.IsValid(ctx, jwt.AccessToken, doctor.ID, claims.TokenID)
	require.NoError(t, err)
	assert.False(t, valid)

	// Appointments stay on record
	kept, err := c.appointments.FindByID(ctx, booked.ID)
	require.NoError(t, err)
	assert.NotNil(t, kept)

	slots, err := c.availability.AvailableSlots(ctx, doctor.ID, monday)
	require.NoError(t, err)
	assert.Empty(t, slots)

	_, err = c.authUsecase().Login(ctx, &dto.LoginRequest{Email: "dr-lee@clinic.test", Password: testPassword})
	assert.ErrorIs(t, err, ErrAccountInactive)
}
