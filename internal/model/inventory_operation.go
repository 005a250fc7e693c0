package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventory operation states.
const (
	InventoryOperationCancelled = 0
	InventoryOperationActive    = 1
)

// InventoryOperation is a stock-count event: shift start, restock,
// product devolution or shift end.
type InventoryOperation struct {
	ID                       string                          `gorm:"type:varchar(36);primaryKey" json:"id"`
	SignConfirmation         string                          `gorm:"column:sign_confirmation" json:"sign_confirmation"`
	Date                     time.Time                       `gorm:"not null" json:"date"`
	State                    int                             `gorm:"not null;default:1" json:"state"`
	Audit                    int                             `gorm:"not null;default:0" json:"audit"`
	IDInventoryOperationType string                          `gorm:"column:id_inventory_operation_type;type:varchar(40);not null" json:"id_inventory_operation_type"`
	IDWorkDay                string                          `gorm:"column:id_work_day;type:varchar(36);not null;index" json:"id_work_day"`
	Descriptions             []InventoryOperationDescription `gorm:"foreignKey:IDInventoryOperation;constraint:OnDelete:CASCADE" json:"descriptions"`
}

func (InventoryOperation) TableName() string { return "inventory_operations" }

// InventoryOperationDescription is a line item, unique per
// (IDProduct, PriceAtMoment) inside one operation.
type InventoryOperationDescription struct {
	ID                   string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	PriceAtMoment        decimal.Decimal `gorm:"column:price_at_moment;type:decimal(12,2);not null" json:"price_at_moment"`
	Amount               int             `gorm:"not null" json:"amount"`
	CreatedAt            time.Time       `gorm:"column:created_at;not null" json:"created_at"`
	IDInventoryOperation string          `gorm:"column:id_inventory_operation;type:varchar(36);not null;index" json:"id_inventory_operation"`
	IDProduct            string          `gorm:"column:id_product;type:varchar(36);not null" json:"id_product"`
}

func (InventoryOperationDescription) TableName() string { return "inventory_operation_descriptions" }
