package repository

import (
	"context"

	"clinic-appointment/internal/domain/entity"
)

type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	// FindByID returns nil, nil when the branch does not exist.
	FindByID(ctx context.Context, id int) (*entity.Branch, error)
	// FindAll lists branches by name; onlyActive hides closed ones.
	FindAll(ctx context.Context, onlyActive bool) ([]entity.Branch, error)
	Update(ctx context.Context, branch *entity.Branch) error
}
