package domain

import (
	"fmt"
	"time"

	"routevendor/internal/model"

	"github.com/shopspring/decimal"
)

// InventoryOperationAggregate builds and transitions one stock-count event.
type InventoryOperationAggregate struct {
	op *model.InventoryOperation
}

// NewInventoryOperationAggregate wraps an existing operation, or starts empty
// when existing is nil.
func NewInventoryOperationAggregate(existing *model.InventoryOperation) *InventoryOperationAggregate {
	a := &InventoryOperationAggregate{}
	if existing != nil {
		cp := *existing
		cp.Descriptions = append([]model.InventoryOperationDescription(nil), existing.Descriptions...)
		a.op = &cp
	}
	return a
}

// Create initialises an active operation without lines.
func (a *InventoryOperationAggregate) Create(id, signConfirmation string, date time.Time, audit int, kind InventoryOperationType, workDayID string) {
	a.op = &model.InventoryOperation{
		ID:                       id,
		SignConfirmation:         signConfirmation,
		Date:                     date,
		State:                    model.InventoryOperationActive,
		Audit:                    audit,
		IDInventoryOperationType: string(kind),
		IDWorkDay:                workDayID,
		Descriptions:             []model.InventoryOperationDescription{},
	}
}

// AddLine appends a line item. Lines are unique per (product, price).
func (a *InventoryOperationAggregate) AddLine(id string, price decimal.Decimal, amount int, createdAt time.Time, productID string) error {
	if a.op == nil {
		return ErrNoOperation
	}
	for _, d := range a.op.Descriptions {
		if d.IDProduct == productID && d.PriceAtMoment.Equal(price) {
			return fmt.Errorf("%w: product %s at %s", ErrDuplicateLine, productID, price.String())
		}
	}
	a.op.Descriptions = append(a.op.Descriptions, model.InventoryOperationDescription{
		ID:                   id,
		PriceAtMoment:        price,
		Amount:               amount,
		CreatedAt:            createdAt,
		IDInventoryOperation: a.op.ID,
		IDProduct:            productID,
	})
	return nil
}

// Cancel marks the operation as cancelled. Whether it may be cancelled is
// decided by CanCancelInventoryOperation before calling this.
func (a *InventoryOperationAggregate) Cancel() error {
	if a.op == nil {
		return ErrNoOperation
	}
	a.op.State = model.InventoryOperationCancelled
	return nil
}

// Get returns a copy of the operation.
func (a *InventoryOperationAggregate) Get() (model.InventoryOperation, error) {
	if a.op == nil {
		return model.InventoryOperation{}, ErrNoOperation
	}
	out := *a.op
	out.Descriptions = append([]model.InventoryOperationDescription(nil), a.op.Descriptions...)
	return out, nil
}
