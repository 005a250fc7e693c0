package repository

import (
	"context"

	"routevendor/internal/model"

	"gorm.io/gorm"
)

type InventoryOperationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, op *model.InventoryOperation) error
	FindByID(ctx context.Context, id string) (*model.InventoryOperation, error)
	List(ctx context.Context) ([]model.InventoryOperation, error)
	UpdateState(ctx context.Context, tx *gorm.DB, id string, state int) error
}

type inventoryOperationRepo struct{ db *gorm.DB }

func NewInventoryOperationRepository(db *gorm.DB) InventoryOperationRepository {
	return &inventoryOperationRepo{db: db}
}

func (r *inventoryOperationRepo) Create(ctx context.Context, tx *gorm.DB, op *model.InventoryOperation) error {
	return tx.WithContext(ctx).Create(op).Error
}

func (r *inventoryOperationRepo) FindByID(ctx context.Context, id string) (*model.InventoryOperation, error) {
	var op model.InventoryOperation
	err := r.db.WithContext(ctx).Preload("Descriptions").Where("id = ?", id).First(&op).Error
	return &op, err
}

func (r *inventoryOperationRepo) List(ctx context.Context) ([]model.InventoryOperation, error) {
	var ops []model.InventoryOperation
	err := r.db.WithContext(ctx).Preload("Descriptions").Order("date ASC").Find(&ops).Error
	return ops, err
}

func (r *inventoryOperationRepo) UpdateState(ctx context.Context, tx *gorm.DB, id string, state int) error {
	return tx.WithContext(ctx).Model(&model.InventoryOperation{}).Where("id = ?", id).Update("state", state).Error
}
