package usecase

import (
	"context"
	"testing"

	"clinic-appointment/internal/delivery/dto"
	"clinic-appointment/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (c *clinic) addBranch(name string, active bool) *entity.Branch {
	c.t.Helper()
	branch := &entity.Branch{Name: name, Address: name + " street 1", IsActive: active}
	if err := c.branches.Create(context.Background(), branch); err != nil {
		c.t.Fatal(err)
	}
	return branch
}

func (c *clinic) assignBranch(doctor entity.Actor, branch *entity.Branch) {
	c.doctors.profiles[doctor.ID].BranchID = &branch.ID
}

func TestListBranches_HidesClosedFromNonAdmins(t *testing.T) {
	ctx := context.Background()
	c := newClinic(t, monday)
	c.addBranch("Uptown", true)
	c.addBranch("Downtown", true)
	c.addBranch("Harbor", false)
	uc := c.branchUsecase()

	patientView, err := uc.ListBranches(ctx, c.addPatient("ann"))
	require.NoError(t, err)
	require.Equal(t, 2, patientView.Total)
	assert.Equal(t, "Downtown", patientView.Branches[0].Name)
	assert.Equal(t, "Uptown", patientView.Branches[1].Name)

	adminView, err := uc.ListBranches(ctx, c.addAdmin())
	require.NoError(t, err)
	assert.Equal(t, 3, adminView.Total)
}

func TestGetBranch(t *testing.T) {
	ctx := context.Background()
	c := newClinic(t, monday)
	open := c.addBranch("Uptown", true)
	closed := c.addBranch("Harbor", false)
	patient := c.addPatient("ann")
	uc := c.branchUsecase()

	resp, err := uc.GetBranch(ctx, patient, open.ID)
	require.NoError(t, err)
	assert.Equal(t, "Uptown", resp.Name)

	_, err = uc.GetBranch(ctx, patient, closed.ID)
	assert.ErrorIs(t, err, ErrBranchNotFound)

	_, err = uc.GetBranch(ctx, patient, 99)
	assert.ErrorIs(t, err, ErrBranchNotFound)

	resp, err = uc.GetBranch(ctx, c.addAdmin(), closed.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
}

func TestListBranchDoctors_OnlyAvailableDoctorsOfBranch(t *testing.T) {
	ctx := context.Background()
	c := newClinic(t, monday)
	uptown := c.addBranch("Uptown", true)
	downtown := c.addBranch("Downtown", true)

	lee := c.addDoctor("dr-lee")
	away := c.addDoctor("dr-away")
	elsewhere := c.addDoctor("dr-kim")
	c.addDoctor("dr-unassigned")
	c.assignBranch(lee, uptown)
	c.assignBranch(away, uptown)
	c.assignBranch(elsewhere, downtown)
	c.doctors.profiles[away.ID].IsAvailable = false

	resp, err := c.branchUsecase().ListBranchDoctors(ctx, c.addPatient("ann"), uptown.ID)
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, lee.ID, resp.Doctors[0].ID)
}

func TestListBranchDoctors_ClosedBranch(t *testing.T) {
	c := newClinic(t, monday)
	closed := c.addBranch("Harbor", false)

	_, err := c.branchUsecase().ListBranchDoctors(context.Background(), c.addPatient("ann"), closed.ID)
	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestCreateAndUpdateBranch(t *testing.T) {
	ctx := context.Background()
	c := newClinic(t, monday)
	admin := c.addAdmin()
	uc := c.branchUsecase()

	_, err := uc.CreateBranch(ctx, c.addPatient("ann"), &dto.CreateBranchRequest{Name: "Uptown", Address: "1 Main St"})
	assert.ErrorIs(t, err, ErrAdminsOnly)

	created, err := uc.CreateBranch(ctx, admin, &dto.CreateBranchRequest{Name: "Uptown", Address: "1 Main St", Phone: "555-0100"})
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Equal(t, "555-0100", created.Phone)

	closed := false
	name := "Uptown West"
	updated, err := uc.UpdateBranch(ctx, admin, created.ID, &dto.UpdateBranchRequest{Name: &name, IsActive: &closed})
	require.NoError(t, err)
	assert.Equal(t, "Uptown West", updated.Name)
	assert.Equal(t, "1 Main St", updated.Address)
	assert.False(t, updated.IsActive)

	_, err = uc.UpdateBranch(ctx, admin, 99, &dto.UpdateBranchRequest{Name: &name})
	assert.ErrorIs(t, err, ErrBranchNotFound)

	assert.Contains(t, c.audit.actions(), entity.AuditActionBranchCreate)
	assert.Contains(t, c.audit.actions(), entity.AuditActionBranchUpdate)
}

func TestUpdateOwnProfile_Branch(t *testing.T) {
	ctx := context.Background()
	c := newClinic(t, monday)
	lee := c.addDoctor("dr-lee")
	uptown := c.addBranch("Uptown", true)
	closed := c.addBranch("Harbor", false)
	uc := c.doctorUsecase()

	resp, err := uc.UpdateOwnProfile(ctx, lee, &dto.UpdateDoctorProfileRequest{BranchID: &uptown.ID})
	require.NoError(t, err)
	require.NotNil(t, resp.Branch)
	assert.Equal(t, "Uptown", resp.Branch.Name)
	assert.Equal(t, uptown.ID, *c.doctors.profiles[lee.ID].BranchID)

	_, err = uc.UpdateOwnProfile(ctx, lee, &dto.UpdateDoctorProfileRequest{BranchID: &closed.ID})
	assert.ErrorIs(t, err, ErrUnknownBranch)

	missing := 42
	_, err = uc.UpdateOwnProfile(ctx, lee, &dto.UpdateDoctorProfileRequest{BranchID: &missing})
	assert.ErrorIs(t, err, ErrUnknownBranch)

	detach := 0
	resp, err = uc.UpdateOwnProfile(ctx, lee, &dto.UpdateDoctorProfileRequest{BranchID: &detach})
	require.NoError(t, err)
	assert.Nil(t, resp.Branch)
	assert.Nil(t, c.doctors.profiles[lee.ID].BranchID)
}
