package repository

import (
	"context"
	"errors"

	"clinic-appointment/internal/domain/entity"
	domainRepo "clinic-appointment/internal/domain/repository"

	"gorm.io/gorm"
)

type branchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) domainRepo.BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(ctx context.Context, branch *entity.Branch) error {
	return wrapWrite("create branch", conn(ctx, r.db).Create(branch).Error)
}

func (r *branchRepository) FindByID(ctx context.Context, id int) (*entity.Branch, error) {
	var branch entity.Branch
	err := conn(ctx, r.db).Where("id = ?", id).First(&branch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) FindAll(ctx context.Context, onlyActive bool) ([]entity.Branch, error) {
	var branches []entity.Branch
	query := conn(ctx, r.db)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Order("name ASC").Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

func (r *branchRepository) Update(ctx context.Context, branch *entity.Branch) error {
	return wrapWrite("update branch", conn(ctx, r.db).Save(branch).Error)
}
