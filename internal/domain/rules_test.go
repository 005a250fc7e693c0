package domain_test

import (
	"testing"

	"routevendor/internal/domain"
	"routevendor/internal/model"

	"github.com/stretchr/testify/assert"
)

func dayOp(id, item string, kind domain.DayOperationType) model.DayOperation {
	return model.DayOperation{ID: id, IDItem: item, OperationType: string(kind)}
}

func invOp(id string, kind domain.InventoryOperationType, state int) model.InventoryOperation {
	return model.InventoryOperation{ID: id, IDInventoryOperationType: string(kind), State: state}
}

// ── Cancellability ───────────────────────────────────────────────────────────

func TestCanCancel_NotInNarrativeOrCancelled(t *testing.T) {
	ops := []model.DayOperation{dayOp("d1", "inv-1", domain.OpRestockInventory)}

	assert.False(t, domain.CanCancelInventoryOperation(ops, invOp("inv-9", domain.InventoryRestock, model.InventoryOperationActive)))
	assert.False(t, domain.CanCancelInventoryOperation(ops, invOp("inv-1", domain.InventoryRestock, model.InventoryOperationCancelled)))
}

func TestCanCancel_DevolutionNeverCancellable(t *testing.T) {
	ops := []model.DayOperation{dayOp("d1", "inv-1", domain.OpProductDevolutionInventory)}
	assert.False(t, domain.CanCancelInventoryOperation(ops, invOp("inv-1", domain.InventoryProductDevolution, model.InventoryOperationActive)))
}

func TestCanCancel_EndShiftAlwaysCancellable(t *testing.T) {
	ops := []model.DayOperation{
		dayOp("d1", "inv-1", domain.OpEndShiftInventory),
		dayOp("d2", "tx-1", domain.OpRouteTransaction),
	}
	assert.True(t, domain.CanCancelInventoryOperation(ops, invOp("inv-1", domain.InventoryEndShift, model.InventoryOperationActive)))
}

func TestCanCancel_RestockBlockedByLaterActivity(t *testing.T) {
	restock := invOp("inv-1", domain.InventoryRestock, model.InventoryOperationActive)
	base := []model.DayOperation{
		dayOp("d0", "store-1", domain.OpRouteClientAttention),
		dayOp("d1", "inv-1", domain.OpRestockInventory),
	}
	assert.True(t, domain.CanCancelInventoryOperation(base, restock))

	withVisit := append(append([]model.DayOperation(nil), base...), dayOp("d2", "store-2", domain.OpAttendClientPetition))
	assert.True(t, domain.CanCancelInventoryOperation(withVisit, restock))

	for _, blocker := range []domain.DayOperationType{
		domain.OpRouteTransaction,
		domain.OpRestockInventory,
		domain.OpProductDevolutionInventory,
		domain.OpEndShiftInventory,
	} {
		ops := append(append([]model.DayOperation(nil), base...), dayOp("d2", "x", blocker))
		assert.False(t, domain.CanCancelInventoryOperation(ops, restock), string(blocker))
	}
}

func TestCanCancel_StartShiftBlockedByRestock(t *testing.T) {
	start := invOp("inv-1", domain.InventoryStartShift, model.InventoryOperationActive)
	ops := []model.DayOperation{dayOp("d1", "inv-1", domain.OpStartShiftInventory)}
	assert.True(t, domain.CanCancelInventoryOperation(ops, start))

	ops = append(ops, dayOp("d2", "inv-2", domain.OpRestockInventory))
	assert.False(t, domain.CanCancelInventoryOperation(ops, start))
}

// ── Next inventory type ──────────────────────────────────────────────────────

func TestNextType(t *testing.T) {
	active, cancelled := model.InventoryOperationActive, model.InventoryOperationCancelled

	cases := []struct {
		name   string
		ops    []model.DayOperation
		invOps []model.InventoryOperation
		want   domain.InventoryOperationType
	}{
		{"empty shift", nil, nil, domain.InventoryStartShift},
		{"only visits", []model.DayOperation{dayOp("d", "s", domain.OpRouteClientAttention)}, nil, domain.InventoryStartShift},
		{
			"active start shift",
			[]model.DayOperation{dayOp("d", "i1", domain.OpStartShiftInventory)},
			[]model.InventoryOperation{invOp("i1", domain.InventoryStartShift, active)},
			domain.InventoryRestock,
		},
		{
			"cancelled start shift",
			[]model.DayOperation{dayOp("d", "i1", domain.OpStartShiftInventory)},
			[]model.InventoryOperation{invOp("i1", domain.InventoryStartShift, cancelled)},
			domain.InventoryStartShift,
		},
		{"sale made", []model.DayOperation{dayOp("d", "t1", domain.OpRouteTransaction)}, nil, domain.InventoryRestock},
		{
			"active devolution",
			[]model.DayOperation{
				dayOp("d1", "t1", domain.OpRouteTransaction),
				dayOp("d2", "i2", domain.OpProductDevolutionInventory),
			},
			[]model.InventoryOperation{invOp("i2", domain.InventoryProductDevolution, active)},
			domain.InventoryEndShift,
		},
		{
			"cancelled devolution",
			[]model.DayOperation{dayOp("d2", "i2", domain.OpProductDevolutionInventory)},
			[]model.InventoryOperation{invOp("i2", domain.InventoryProductDevolution, cancelled)},
			domain.InventoryProductDevolution,
		},
		{
			"end shift registered last",
			[]model.DayOperation{
				dayOp("d1", "i2", domain.OpProductDevolutionInventory),
				dayOp("d2", "i3", domain.OpEndShiftInventory),
			},
			[]model.InventoryOperation{
				invOp("i2", domain.InventoryProductDevolution, active),
				invOp("i3", domain.InventoryEndShift, active),
			},
			domain.InventoryProductDevolution,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.NextInventoryOperationType(tc.ops, tc.invOps))
		})
	}
}

func TestIsInventoryTypeAllowed(t *testing.T) {
	assert.True(t, domain.IsInventoryTypeAllowed(domain.InventoryRestock, domain.InventoryRestock))
	assert.True(t, domain.IsInventoryTypeAllowed(domain.InventoryRestock, domain.InventoryProductDevolution))
	assert.False(t, domain.IsInventoryTypeAllowed(domain.InventoryRestock, domain.InventoryEndShift))
	assert.False(t, domain.IsInventoryTypeAllowed(domain.InventoryStartShift, domain.InventoryRestock))
	assert.False(t, domain.IsInventoryTypeAllowed(domain.InventoryEndShift, domain.InventoryProductDevolution))
}

func TestInventoryTypeHelpers(t *testing.T) {
	assert.True(t, domain.InventoryStartShift.MovesStock())
	assert.True(t, domain.InventoryRestock.MovesStock())
	assert.False(t, domain.InventoryProductDevolution.MovesStock())
	assert.False(t, domain.InventoryEndShift.MovesStock())
	assert.False(t, domain.InventoryOperationType("bogus").Valid())
	assert.True(t, domain.OpEndShiftInventory.IsInventory())
	assert.False(t, domain.OpRouteTransaction.IsInventory())
}
