package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-appointment/internal/delivery/dto"
	"clinic-appointment/internal/domain/entity"
	"clinic-appointment/internal/usecase"
	"clinic-appointment/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBranchUsecase struct {
	usecase.BranchUsecase

	doctorsOf int
	created   *dto.CreateBranchRequest
}

func (f *fakeBranchUsecase) ListBranchDoctors(_ context.Context, _ entity.Actor, branchID int) (*dto.DoctorListResponse, error) {
	f.doctorsOf = branchID
	if branchID != 1 {
		return nil, usecase.ErrBranchNotFound
	}
	return &dto.DoctorListResponse{Doctors: []dto.DoctorResponse{{FullName: "dr-lee"}}, Total: 1}, nil
}

func (f *fakeBranchUsecase) CreateBranch(_ context.Context, _ entity.Actor, req *dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	f.created = req
	return &dto.BranchResponse{ID: 7, Name: req.Name, Address: req.Address, IsActive: true}, nil
}

func TestListBranchDoctorsHandler(t *testing.T) {
	patient := entity.Actor{ID: uuid.New(), Role: entity.RolePatient}
	fake := &fakeBranchUsecase{}
	h := NewBranchHandler(quietLogger(), fake, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.ListBranchDoctors(rec, newRequest(http.MethodGet, "/branches/1/doctors", "", &patient, "1"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, fake.doctorsOf)
	assert.True(t, decodeResponse(t, rec).Success)

	rec = httptest.NewRecorder()
	h.ListBranchDoctors(rec, newRequest(http.MethodGet, "/branches/5/doctors", "", &patient, "5"))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ListBranchDoctors(rec, newRequest(http.MethodGet, "/branches/abc/doctors", "", &patient, "abc"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBranchHandler(t *testing.T) {
	admin := entity.Actor{ID: uuid.New(), Role: entity.RoleAdmin}
	fake := &fakeBranchUsecase{}
	h := NewBranchHandler(quietLogger(), fake, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.CreateBranch(rec, newRequest(http.MethodPost, "/admin/branches", `{"name":"Uptown"}`, &admin, ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, fake.created)

	rec = httptest.NewRecorder()
	h.CreateBranch(rec, newRequest(http.MethodPost, "/admin/branches", `{"name":"Uptown","address":"1 Main St"}`, &admin, ""))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, fake.created)
	assert.Equal(t, "1 Main St", fake.created.Address)
}
