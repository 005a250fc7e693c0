package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Route transaction states.
const (
	RouteTransactionActive    = "ACTIVE"
	RouteTransactionCancelled = "CANCELLED"
)

// Route transaction line types.
const (
	LineTypeSales             = "sales"
	LineTypeProductReposition = "product_reposition"
	LineTypeProductDevolution = "product_devolution"
)

// RouteTransaction is a point-of-sale event at one store.
type RouteTransaction struct {
	ID            string                        `gorm:"type:varchar(36);primaryKey" json:"id"`
	Date          time.Time                     `gorm:"not null" json:"date"`
	State         string                        `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"state"`
	CashReceived  decimal.Decimal               `gorm:"column:cash_received;type:decimal(12,2);not null" json:"cash_received"`
	IDWorkDay     string                        `gorm:"column:id_work_day;type:varchar(36);not null;index" json:"id_work_day"`
	IDStore       string                        `gorm:"column:id_store;type:varchar(36);not null;index" json:"id_store"`
	PaymentMethod string                        `gorm:"column:payment_method;type:varchar(36);not null" json:"payment_method"`
	Descriptions  []RouteTransactionDescription `gorm:"foreignKey:IDRouteTransaction;constraint:OnDelete:CASCADE" json:"descriptions"`
}

func (RouteTransaction) TableName() string { return "route_transactions" }

// RouteTransactionDescription is a line item, unique per
// (IDProductInventory, IDTransactionOperationType) inside one transaction.
type RouteTransactionDescription struct {
	ID                         string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	PriceAtMoment              decimal.Decimal `gorm:"column:price_at_moment;type:decimal(12,2);not null" json:"price_at_moment"`
	Amount                     int             `gorm:"not null" json:"amount"`
	CreatedAt                  time.Time       `gorm:"column:created_at;not null" json:"created_at"`
	IDProductInventory         string          `gorm:"column:id_product_inventory;type:varchar(36);not null" json:"id_product_inventory"`
	IDTransactionOperationType string          `gorm:"column:id_transaction_operation_type;type:varchar(30);not null" json:"id_transaction_operation_type"`
	IDProduct                  string          `gorm:"column:id_product;type:varchar(36);not null" json:"id_product"`
	IDRouteTransaction         string          `gorm:"column:id_route_transaction;type:varchar(36);not null;index" json:"id_route_transaction"`
}

func (RouteTransactionDescription) TableName() string { return "route_transaction_descriptions" }
