package model

import "github.com/shopspring/decimal"

// ProductInventory is the live stock of one product during the shift.
// Stock is never negative.
type ProductInventory struct {
	IDProductInventory string          `gorm:"column:id_product_inventory;type:varchar(36);primaryKey" json:"id_product_inventory"`
	PriceAtMoment      decimal.Decimal `gorm:"column:price_at_moment;type:decimal(12,2);not null" json:"price_at_moment"`
	Stock              int             `gorm:"not null;default:0" json:"stock"`
	IDProduct          string          `gorm:"column:id_product;type:varchar(36);not null;uniqueIndex" json:"id_product"`
}

func (ProductInventory) TableName() string { return "product_inventories" }
