package repository

import (
	"context"

	"routevendor/internal/model"

	"gorm.io/gorm"
)

// ProductInventoryRepository persists the stock ledger deltas: records the
// ledger inserted and the last value of every record it modified.
type ProductInventoryRepository interface {
	List(ctx context.Context) ([]model.ProductInventory, error)
	InsertBatch(ctx context.Context, tx *gorm.DB, recs []model.ProductInventory) error
	UpdateBatch(ctx context.Context, tx *gorm.DB, recs []model.ProductInventory) error
}

type productInventoryRepo struct{ db *gorm.DB }

func NewProductInventoryRepository(db *gorm.DB) ProductInventoryRepository {
	return &productInventoryRepo{db: db}
}

func (r *productInventoryRepo) List(ctx context.Context) ([]model.ProductInventory, error) {
	var recs []model.ProductInventory
	err := r.db.WithContext(ctx).Order("id_product ASC").Find(&recs).Error
	return recs, err
}

func (r *productInventoryRepo) InsertBatch(ctx context.Context, tx *gorm.DB, recs []model.ProductInventory) error {
	if len(recs) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&recs).Error
}

func (r *productInventoryRepo) UpdateBatch(ctx context.Context, tx *gorm.DB, recs []model.ProductInventory) error {
	for _, rec := range recs {
		err := tx.WithContext(ctx).Model(&model.ProductInventory{}).
			Where("id_product_inventory = ?", rec.IDProductInventory).
			Updates(map[string]interface{}{
				"stock":           rec.Stock,
				"price_at_moment": rec.PriceAtMoment,
			}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
