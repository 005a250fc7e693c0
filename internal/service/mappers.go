package service

import (
	"time"

	"routevendor/internal/dto"
	"routevendor/internal/model"

	"github.com/shopspring/decimal"
)

const timeLayout = time.RFC3339

func toJornadaResponse(w *model.WorkDayInformation) *dto.JornadaResponse {
	resp := &dto.JornadaResponse{
		ID:             w.IDWorkDay,
		RouteID:        w.IDRoute,
		RouteName:      w.RouteName,
		Description:    w.Description,
		DayID:          w.IDDay,
		RouteDayID:     w.IDRouteDay,
		StartDate:      w.StartDate.Format(timeLayout),
		StartPettyCash: w.StartPettyCash,
		FinalPettyCash: w.FinalPettyCash,
		Estado:         "abierta",
	}
	if w.FinishDate != nil {
		s := w.FinishDate.Format(timeLayout)
		resp.FinishDate = &s
		resp.Estado = "cerrada"
	}
	return resp
}

func toOperacionResponse(op model.DayOperation) dto.OperacionDiaResponse {
	return dto.OperacionDiaResponse{
		ID:            op.ID,
		IDItem:        op.IDItem,
		OperationType: op.OperationType,
		CreatedAt:     op.CreatedAt.Format(timeLayout),
		Position:      op.Position,
	}
}

func inventoryEstado(state int) string {
	if state == model.InventoryOperationActive {
		return "activa"
	}
	return "cancelada"
}

func toInventarioResponse(op model.InventoryOperation) dto.InventarioOperacionResponse {
	lineas := make([]dto.InventarioLineaResponse, len(op.Descriptions))
	for i, d := range op.Descriptions {
		lineas[i] = dto.InventarioLineaResponse{
			ID:        d.ID,
			ProductID: d.IDProduct,
			Price:     d.PriceAtMoment,
			Amount:    d.Amount,
		}
	}
	return dto.InventarioOperacionResponse{
		ID:               op.ID,
		Tipo:             op.IDInventoryOperationType,
		SignConfirmation: op.SignConfirmation,
		Date:             op.Date.Format(timeLayout),
		Estado:           inventoryEstado(op.State),
		Audit:            op.Audit,
		WorkDayID:        op.IDWorkDay,
		Lineas:           lineas,
	}
}

// transactionTotal sums sales lines only; repositions and devolutions carry
// no charge.
func transactionTotal(t model.RouteTransaction) decimal.Decimal {
	total := decimal.Zero
	for _, d := range t.Descriptions {
		if d.IDTransactionOperationType == model.LineTypeSales {
			total = total.Add(d.PriceAtMoment.Mul(decimal.NewFromInt(int64(d.Amount))))
		}
	}
	return total
}

func toTransaccionResponse(t model.RouteTransaction) dto.TransaccionResponse {
	lineas := make([]dto.TransaccionLineaResponse, len(t.Descriptions))
	for i, d := range t.Descriptions {
		lineas[i] = dto.TransaccionLineaResponse{
			ID:                 d.ID,
			ProductInventoryID: d.IDProductInventory,
			ProductID:          d.IDProduct,
			Tipo:               d.IDTransactionOperationType,
			Price:              d.PriceAtMoment,
			Amount:             d.Amount,
			Subtotal:           d.PriceAtMoment.Mul(decimal.NewFromInt(int64(d.Amount))),
		}
	}
	return dto.TransaccionResponse{
		ID:            t.ID,
		StoreID:       t.IDStore,
		WorkDayID:     t.IDWorkDay,
		Date:          t.Date.Format(timeLayout),
		Estado:        t.State,
		PaymentMethod: t.PaymentMethod,
		CashReceived:  t.CashReceived,
		Total:         transactionTotal(t),
		Lineas:        lineas,
	}
}

func toStockResponses(recs []model.ProductInventory) []dto.StockResponse {
	out := make([]dto.StockResponse, len(recs))
	for i, r := range recs {
		out[i] = dto.StockResponse{
			ID:        r.IDProductInventory,
			ProductID: r.IDProduct,
			Price:     r.PriceAtMoment,
			Stock:     r.Stock,
		}
	}
	return out
}
