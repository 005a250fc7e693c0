package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type InventarioLineaRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Price     decimal.Decimal `json:"price"      validate:"min=0"`
	Amount    int             `json:"amount"     validate:"min=0"`
}

type RegistrarInventarioRequest struct {
	Tipo             string                   `json:"tipo"              validate:"required,oneof=start_shift_inventory restock_inventory product_devolution_inventory end_shift_inventory"`
	SignConfirmation string                   `json:"sign_confirmation" validate:"required"`
	Audit            int                      `json:"audit"             validate:"min=0"`
	Lineas           []InventarioLineaRequest `json:"lineas"            validate:"required,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type InventarioLineaResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	Amount    int             `json:"amount"`
}

type InventarioOperacionResponse struct {
	ID               string                    `json:"id"`
	Tipo             string                    `json:"tipo"`
	SignConfirmation string                    `json:"sign_confirmation"`
	Date             string                    `json:"date"`
	Estado           string                    `json:"estado"` // activa | cancelada
	Audit            int                       `json:"audit"`
	WorkDayID        string                    `json:"work_day_id"`
	Lineas           []InventarioLineaResponse `json:"lineas"`
}

type CancelableResponse struct {
	ID         string `json:"id"`
	Cancelable bool   `json:"cancelable"`
}

type SiguienteTipoResponse struct {
	Tipo string `json:"tipo"`
}

type StockResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
}
