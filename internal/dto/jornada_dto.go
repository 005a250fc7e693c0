package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RouteStoreRequest struct {
	StoreID  string `json:"store_id" validate:"required"`
	Position int    `json:"position" validate:"min=0"`
}

type IniciarJornadaRequest struct {
	RouteID        string              `json:"route_id"         validate:"required"`
	RouteName      string              `json:"route_name"       validate:"required,min=1,max=120"`
	Description    string              `json:"description"      validate:"max=255"`
	RouteStatus    bool                `json:"route_status"`
	DayID          string              `json:"day_id"           validate:"required"`
	RouteDayID     string              `json:"route_day_id"     validate:"required"`
	StartPettyCash decimal.Decimal     `json:"start_petty_cash" validate:"min=0"`
	Stores         []RouteStoreRequest `json:"stores"           validate:"dive"`
}

type FinalizarJornadaRequest struct {
	FinalPettyCash decimal.Decimal `json:"final_petty_cash" validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type JornadaResponse struct {
	ID             string           `json:"id"`
	RouteID        string           `json:"route_id"`
	RouteName      string           `json:"route_name"`
	Description    string           `json:"description"`
	DayID          string           `json:"day_id"`
	RouteDayID     string           `json:"route_day_id"`
	StartDate      string           `json:"start_date"`
	FinishDate     *string          `json:"finish_date"`
	StartPettyCash decimal.Decimal  `json:"start_petty_cash"`
	FinalPettyCash *decimal.Decimal `json:"final_petty_cash"`
	Estado         string           `json:"estado"` // abierta | cerrada
}
