package repository

import (
	"context"
	"errors"

	"routevendor/internal/model"

	"gorm.io/gorm"
)

// WorkDayRepository stores the single shift of the device. Shift-scoped
// tables only ever hold the current shift; ResetAll wipes them.
type WorkDayRepository interface {
	// FindCurrent returns nil, nil when no shift has been started.
	FindCurrent(ctx context.Context) (*model.WorkDayInformation, error)
	Save(ctx context.Context, tx *gorm.DB, w *model.WorkDayInformation) error
	ResetAll(ctx context.Context, tx *gorm.DB) error
	DB() *gorm.DB
}

type workDayRepo struct{ db *gorm.DB }

func NewWorkDayRepository(db *gorm.DB) WorkDayRepository { return &workDayRepo{db: db} }

func (r *workDayRepo) DB() *gorm.DB { return r.db }

func (r *workDayRepo) FindCurrent(ctx context.Context) (*model.WorkDayInformation, error) {
	var w model.WorkDayInformation
	err := r.db.WithContext(ctx).Order("start_date DESC").First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *workDayRepo) Save(ctx context.Context, tx *gorm.DB, w *model.WorkDayInformation) error {
	return tx.WithContext(ctx).Save(w).Error
}

// ResetAll deletes children before parents.
func (r *workDayRepo) ResetAll(ctx context.Context, tx *gorm.DB) error {
	q := tx.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, m := range []interface{}{
		&model.DayOperation{},
		&model.RouteTransactionDescription{},
		&model.RouteTransaction{},
		&model.InventoryOperationDescription{},
		&model.InventoryOperation{},
		&model.ProductInventory{},
		&model.WorkDayInformation{},
	} {
		if err := q.Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}
