package dto

import "github.com/shopspring/decimal"

// ShiftReport is the snapshot of a closed shift handed to the report worker.
// It is serialized as JSON into the job queue.
type ShiftReport struct {
	WorkDayID      string          `json:"work_day_id"`
	RouteName      string          `json:"route_name"`
	StartDate      string          `json:"start_date"`
	FinishDate     string          `json:"finish_date"`
	StartPettyCash decimal.Decimal `json:"start_petty_cash"`
	FinalPettyCash decimal.Decimal `json:"final_petty_cash"`

	TransaccionesActivas    int `json:"transacciones_activas"`
	TransaccionesCanceladas int `json:"transacciones_canceladas"`

	// Sales totals per payment method, active transactions only.
	VentasPorMetodo map[string]decimal.Decimal `json:"ventas_por_metodo"`
	TotalVentas     decimal.Decimal            `json:"total_ventas"`

	Inventarios []ShiftReportInventory `json:"inventarios"`
	Stock       []StockResponse        `json:"stock"`
}

type ShiftReportInventory struct {
	ID     string `json:"id"`
	Tipo   string `json:"tipo"`
	Estado string `json:"estado"`
	Date   string `json:"date"`
	Lineas int    `json:"lineas"`
}
