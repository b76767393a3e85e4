package dto

import "time"

// Request DTOs

type CreateBranchRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Address string `json:"address" validate:"required"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// UpdateBranchRequest changes a branch. Nil fields keep their value.
type UpdateBranchRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address  *string `json:"address" validate:"omitempty,min=1"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
	Email    *string `json:"email" validate:"omitempty,email"`
	IsActive *bool   `json:"is_active" validate:"omitempty"`
}

// Response DTOs

type BranchResponse struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BranchListResponse struct {
	Branches []BranchResponse `json:"branches"`
	Total    int              `json:"total"`
}
