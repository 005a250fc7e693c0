package domain

import (
	"fmt"
	"time"

	"routevendor/internal/model"

	"github.com/shopspring/decimal"
)

// RouteTransactionAggregate builds and transitions one point-of-sale event.
type RouteTransactionAggregate struct {
	tx *model.RouteTransaction
}

// NewRouteTransactionAggregate wraps an existing transaction, or starts empty
// when existing is nil.
func NewRouteTransactionAggregate(existing *model.RouteTransaction) *RouteTransactionAggregate {
	a := &RouteTransactionAggregate{}
	if existing != nil {
		cp := *existing
		cp.Descriptions = append([]model.RouteTransactionDescription(nil), existing.Descriptions...)
		a.tx = &cp
	}
	return a
}

// Create initialises an active transaction without lines.
func (a *RouteTransactionAggregate) Create(id string, date time.Time, cashReceived decimal.Decimal, workDayID, storeID, paymentMethod string) {
	a.tx = &model.RouteTransaction{
		ID:            id,
		Date:          date,
		State:         model.RouteTransactionActive,
		CashReceived:  cashReceived,
		IDWorkDay:     workDayID,
		IDStore:       storeID,
		PaymentMethod: paymentMethod,
		Descriptions:  []model.RouteTransactionDescription{},
	}
}

// AddLine appends a line item. Lines are unique per (inventory record, line type).
func (a *RouteTransactionAggregate) AddLine(id string, price decimal.Decimal, amount int, createdAt time.Time, inventoryRecordID, lineType, productID string) error {
	if a.tx == nil {
		return ErrNoTransaction
	}
	for _, d := range a.tx.Descriptions {
		if d.IDProductInventory == inventoryRecordID && d.IDTransactionOperationType == lineType {
			return fmt.Errorf("%w: %s (%s)", ErrDuplicateLine, inventoryRecordID, lineType)
		}
	}
	a.tx.Descriptions = append(a.tx.Descriptions, model.RouteTransactionDescription{
		ID:                         id,
		PriceAtMoment:              price,
		Amount:                     amount,
		CreatedAt:                  createdAt,
		IDProductInventory:         inventoryRecordID,
		IDTransactionOperationType: lineType,
		IDProduct:                  productID,
		IDRouteTransaction:         a.tx.ID,
	})
	return nil
}

// Cancel marks the transaction as cancelled. Stock is restored separately
// with ReverseStock.
func (a *RouteTransactionAggregate) Cancel() error {
	if a.tx == nil {
		return ErrNoTransaction
	}
	a.tx.State = model.RouteTransactionCancelled
	return nil
}

// Get returns a copy of the transaction.
func (a *RouteTransactionAggregate) Get() (model.RouteTransaction, error) {
	if a.tx == nil {
		return model.RouteTransaction{}, ErrNoTransaction
	}
	out := *a.tx
	out.Descriptions = append([]model.RouteTransactionDescription(nil), a.tx.Descriptions...)
	return out, nil
}

// ConsumesStock reports whether a line of this type took product out of the
// vendor's stock when the transaction was registered.
func ConsumesStock(lineType string) bool {
	return lineType == model.LineTypeSales || lineType == model.LineTypeProductReposition
}

// StockIncreaser is the part of the ledger ReverseStock needs.
type StockIncreaser interface {
	Increase(idProductInventory string, amount int) error
}

// ReverseStock gives back the stock consumed by tx. Devolution lines never
// touched stock and are skipped.
func ReverseStock(tx model.RouteTransaction, ledger StockIncreaser) error {
	for _, d := range tx.Descriptions {
		if !ConsumesStock(d.IDTransactionOperationType) {
			continue
		}
		if err := ledger.Increase(d.IDProductInventory, d.Amount); err != nil {
			return fmt.Errorf("reverse line %s: %w", d.ID, err)
		}
	}
	return nil
}
