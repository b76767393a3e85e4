package repository

import (
	"context"

	"clinic-appointment/internal/domain/entity"

	"github.com/google/uuid"
)

// UserRepository stores accounts of every role. Lookups return nil, nil
// when nothing matches.
type UserRepository interface {
	// Create returns ErrDuplicate when the email is already registered.
	Create(ctx context.Context, user *entity.User) error
	// FindByEmail matches case-insensitively.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// Update saves account fields only; profiles have their own repositories.
	Update(ctx context.Context, user *entity.User) error
}
