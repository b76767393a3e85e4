package repository

import (
	"context"
	"errors"
)

// ErrDuplicate is returned by repositories when a write hits a uniqueness
// constraint.
var ErrDuplicate = errors.New("duplicate record")

// Transactor runs fn inside a single database transaction. Repositories
// called with the ctx passed to fn join that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
