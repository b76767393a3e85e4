package converter

import (
	"clinic-appointment/internal/delivery/dto"
	"clinic-appointment/internal/domain/entity"
)

func BranchToResponse(branch *entity.Branch) *dto.BranchResponse {
	if branch == nil {
		return nil
	}

	return &dto.BranchResponse{
		ID:        branch.ID,
		Name:      branch.Name,
		Address:   branch.Address,
		Phone:     branch.Phone,
		Email:     branch.Email,
		IsActive:  branch.IsActive,
		CreatedAt: branch.CreatedAt,
		UpdatedAt: branch.UpdatedAt,
	}
}

func BranchesToResponses(branches []entity.Branch) []dto.BranchResponse {
	responses := make([]dto.BranchResponse, len(branches))
	for i := range branches {
		responses[i] = *BranchToResponse(&branches[i])
	}
	return responses
}
