package repository

import (
	"context"

	"routevendor/internal/model"

	"gorm.io/gorm"
)

type RouteTransactionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, t *model.RouteTransaction) error
	FindByID(ctx context.Context, id string) (*model.RouteTransaction, error)
	List(ctx context.Context) ([]model.RouteTransaction, error)
	ListByStore(ctx context.Context, storeID string) ([]model.RouteTransaction, error)
	UpdateState(ctx context.Context, tx *gorm.DB, id, state string) error
}

type routeTransactionRepo struct{ db *gorm.DB }

func NewRouteTransactionRepository(db *gorm.DB) RouteTransactionRepository {
	return &routeTransactionRepo{db: db}
}

func (r *routeTransactionRepo) Create(ctx context.Context, tx *gorm.DB, t *model.RouteTransaction) error {
	return tx.WithContext(ctx).Create(t).Error
}

func (r *routeTransactionRepo) FindByID(ctx context.Context, id string) (*model.RouteTransaction, error) {
	var t model.RouteTransaction
	err := r.db.WithContext(ctx).Preload("Descriptions").Where("id = ?", id).First(&t).Error
	return &t, err
}

func (r *routeTransactionRepo) List(ctx context.Context) ([]model.RouteTransaction, error) {
	var txs []model.RouteTransaction
	err := r.db.WithContext(ctx).Preload("Descriptions").Order("date ASC").Find(&txs).Error
	return txs, err
}

func (r *routeTransactionRepo) ListByStore(ctx context.Context, storeID string) ([]model.RouteTransaction, error) {
	var txs []model.RouteTransaction
	err := r.db.WithContext(ctx).Preload("Descriptions").
		Where("id_store = ?", storeID).
		Order("date DESC").
		Find(&txs).Error
	return txs, err
}

func (r *routeTransactionRepo) UpdateState(ctx context.Context, tx *gorm.DB, id, state string) error {
	return tx.WithContext(ctx).Model(&model.RouteTransaction{}).Where("id = ?", id).Update("state", state).Error
}
