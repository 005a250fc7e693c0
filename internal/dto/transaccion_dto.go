package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type TransaccionLineaRequest struct {
	ProductInventoryID string `json:"product_inventory_id" validate:"required"`
	Tipo               string `json:"tipo"                 validate:"required,oneof=sales product_reposition product_devolution"`
	Amount             int    `json:"amount"               validate:"required,gt=0"`
}

type RegistrarTransaccionRequest struct {
	StoreID       string                    `json:"store_id"       validate:"required"`
	PaymentMethod string                    `json:"payment_method" validate:"required,oneof=cash transfer credit"`
	CashReceived  decimal.Decimal           `json:"cash_received"  validate:"min=0"`
	Lineas        []TransaccionLineaRequest `json:"lineas"         validate:"required,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TransaccionLineaResponse struct {
	ID                 string          `json:"id"`
	ProductInventoryID string          `json:"product_inventory_id"`
	ProductID          string          `json:"product_id"`
	Tipo               string          `json:"tipo"`
	Price              decimal.Decimal `json:"price"`
	Amount             int             `json:"amount"`
	Subtotal           decimal.Decimal `json:"subtotal"`
}

type TransaccionResponse struct {
	ID            string                     `json:"id"`
	StoreID       string                     `json:"store_id"`
	WorkDayID     string                     `json:"work_day_id"`
	Date          string                     `json:"date"`
	Estado        string                     `json:"estado"`
	PaymentMethod string                     `json:"payment_method"`
	CashReceived  decimal.Decimal            `json:"cash_received"`
	Total         decimal.Decimal            `json:"total"`
	Lineas        []TransaccionLineaResponse `json:"lineas"`
}
