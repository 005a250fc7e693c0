package repository

import (
	"context"

	"routevendor/internal/model"

	"gorm.io/gorm"
)

// DayOperationRepository stores the shift narrative. The list is always
// written as a whole so positions stay dense.
type DayOperationRepository interface {
	List(ctx context.Context) ([]model.DayOperation, error)
	ReplaceAll(ctx context.Context, tx *gorm.DB, ops []model.DayOperation) error
	DB() *gorm.DB
}

type dayOperationRepo struct{ db *gorm.DB }

func NewDayOperationRepository(db *gorm.DB) DayOperationRepository {
	return &dayOperationRepo{db: db}
}

func (r *dayOperationRepo) DB() *gorm.DB { return r.db }

func (r *dayOperationRepo) List(ctx context.Context) ([]model.DayOperation, error) {
	var ops []model.DayOperation
	err := r.db.WithContext(ctx).Order("position ASC").Find(&ops).Error
	return ops, err
}

func (r *dayOperationRepo) ReplaceAll(ctx context.Context, tx *gorm.DB, ops []model.DayOperation) error {
	q := tx.WithContext(ctx)
	if err := q.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.DayOperation{}).Error; err != nil {
		return err
	}
	if len(ops) == 0 {
		return nil
	}
	return q.CreateInBatches(ops, 200).Error
}
