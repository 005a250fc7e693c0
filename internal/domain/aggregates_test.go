package domain_test

import (
	"errors"
	"testing"
	"time"

	"routevendor/internal/domain"
	"routevendor/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ── Inventory operation ──────────────────────────────────────────────────────

func TestInventoryOperation_MethodsBeforeCreate(t *testing.T) {
	a := domain.NewInventoryOperationAggregate(nil)

	assert.ErrorIs(t, a.AddLine("l1", decimal.NewFromInt(1), 1, t0, "p-1"), domain.ErrNoOperation)
	assert.ErrorIs(t, a.Cancel(), domain.ErrNoOperation)
	_, err := a.Get()
	assert.ErrorIs(t, err, domain.ErrNoOperation)
}

func TestInventoryOperation_CreateAndLines(t *testing.T) {
	a := domain.NewInventoryOperationAggregate(nil)
	a.Create("inv-1", "firma", t0, 0, domain.InventoryStartShift, "wd-1")

	price := decimal.NewFromFloat(10.5)
	require.NoError(t, a.AddLine("l1", price, 4, t0, "p-1"))
	require.NoError(t, a.AddLine("l2", decimal.NewFromInt(11), 2, t0, "p-1"))
	err := a.AddLine("l3", decimal.RequireFromString("10.50"), 9, t0, "p-1")
	assert.ErrorIs(t, err, domain.ErrDuplicateLine)

	op, err := a.Get()
	require.NoError(t, err)
	assert.Equal(t, model.InventoryOperationActive, op.State)
	assert.Equal(t, string(domain.InventoryStartShift), op.IDInventoryOperationType)
	require.Len(t, op.Descriptions, 2)
	assert.Equal(t, "inv-1", op.Descriptions[0].IDInventoryOperation)
}

func TestInventoryOperation_CancelDoesNotTouchSource(t *testing.T) {
	src := model.InventoryOperation{ID: "inv-1", State: model.InventoryOperationActive}
	a := domain.NewInventoryOperationAggregate(&src)
	require.NoError(t, a.Cancel())

	op, _ := a.Get()
	assert.Equal(t, model.InventoryOperationCancelled, op.State)
	assert.Equal(t, model.InventoryOperationActive, src.State)
}

// ── Route transaction ────────────────────────────────────────────────────────

func TestRouteTransaction_MethodsBeforeCreate(t *testing.T) {
	a := domain.NewRouteTransactionAggregate(nil)

	err := a.AddLine("l1", decimal.NewFromInt(1), 1, t0, "pi-1", model.LineTypeSales, "p-1")
	assert.ErrorIs(t, err, domain.ErrNoTransaction)
	assert.ErrorIs(t, a.Cancel(), domain.ErrNoTransaction)
	_, err = a.Get()
	assert.ErrorIs(t, err, domain.ErrNoTransaction)
}

func TestRouteTransaction_LineUniqueness(t *testing.T) {
	a := domain.NewRouteTransactionAggregate(nil)
	a.Create("tx-1", t0, decimal.NewFromInt(100), "wd-1", "store-1", "cash")

	price := decimal.NewFromInt(20)
	require.NoError(t, a.AddLine("l1", price, 2, t0, "pi-1", model.LineTypeSales, "p-1"))
	require.NoError(t, a.AddLine("l2", price, 1, t0, "pi-1", model.LineTypeProductDevolution, "p-1"))
	err := a.AddLine("l3", price, 5, t0, "pi-1", model.LineTypeSales, "p-1")
	assert.ErrorIs(t, err, domain.ErrDuplicateLine)

	tx, err := a.Get()
	require.NoError(t, err)
	assert.Equal(t, model.RouteTransactionActive, tx.State)
	assert.Len(t, tx.Descriptions, 2)

	require.NoError(t, a.Cancel())
	tx, _ = a.Get()
	assert.Equal(t, model.RouteTransactionCancelled, tx.State)
}

type mockIncreaser struct{ mock.Mock }

func (m *mockIncreaser) Increase(id string, amount int) error {
	return m.Called(id, amount).Error(0)
}

func TestReverseStock_OnlyConsumingLines(t *testing.T) {
	tx := model.RouteTransaction{
		ID: "tx-1",
		Descriptions: []model.RouteTransactionDescription{
			{ID: "l1", IDProductInventory: "pi-1", IDTransactionOperationType: model.LineTypeSales, Amount: 2},
			{ID: "l2", IDProductInventory: "pi-1", IDTransactionOperationType: model.LineTypeProductDevolution, Amount: 1},
		},
	}
	m := new(mockIncreaser)
	m.On("Increase", "pi-1", 2).Return(nil).Once()

	require.NoError(t, domain.ReverseStock(tx, m))
	m.AssertExpectations(t)
	m.AssertNumberOfCalls(t, "Increase", 1)
}

func TestReverseStock_RepositionAndError(t *testing.T) {
	tx := model.RouteTransaction{
		Descriptions: []model.RouteTransactionDescription{
			{ID: "l1", IDProductInventory: "pi-2", IDTransactionOperationType: model.LineTypeProductReposition, Amount: 3},
		},
	}
	m := new(mockIncreaser)
	m.On("Increase", "pi-2", 3).Return(domain.ErrRecordNotFound)

	err := domain.ReverseStock(tx, m)
	assert.True(t, errors.Is(err, domain.ErrRecordNotFound))
}

func TestReverseStock_AgainstLedger(t *testing.T) {
	l := newLedger(t, record("pi-1", "p-1", 5))
	tx := model.RouteTransaction{
		Descriptions: []model.RouteTransactionDescription{
			{ID: "l1", IDProductInventory: "pi-1", IDTransactionOperationType: model.LineTypeSales, Amount: 2},
		},
	}
	require.NoError(t, domain.ReverseStock(tx, l))
	rec, _ := l.Get("pi-1")
	assert.Equal(t, 7, rec.Stock)
}

// ── Work day ─────────────────────────────────────────────────────────────────

func startParams() domain.StartWorkDayParams {
	return domain.StartWorkDayParams{
		ID:             "wd-1",
		StartDate:      t0,
		StartPettyCash: decimal.NewFromInt(500),
		RouteID:        "route-1",
		RouteName:      "Centro",
		RouteStatus:    true,
		DayID:          "monday",
		RouteDayID:     "rd-1",
	}
}

func TestWorkDay_StartGuards(t *testing.T) {
	p := startParams()
	p.StartPettyCash = decimal.NewFromInt(-1)
	assert.ErrorIs(t, domain.NewWorkDay(nil).StartWorkDay(p), domain.ErrNegativePettyCash)

	p = startParams()
	p.RouteStatus = false
	assert.ErrorIs(t, domain.NewWorkDay(nil).StartWorkDay(p), domain.ErrInactiveRoute)

	existing := model.WorkDayInformation{IDWorkDay: "wd-0", StartDate: t0}
	assert.ErrorIs(t, domain.NewWorkDay(&existing).StartWorkDay(startParams()), domain.ErrWorkDayAlreadyStarted)
}

func TestWorkDay_StartAndFinish(t *testing.T) {
	w := domain.NewWorkDay(nil)
	require.NoError(t, w.StartWorkDay(startParams()))

	info, err := w.Get()
	require.NoError(t, err)
	assert.True(t, info.IsOpen())
	assert.Equal(t, "Centro", info.RouteName)

	finish := t0.Add(9 * time.Hour)
	require.NoError(t, w.FinishWorkDay(decimal.NewFromInt(900), finish))
	info, _ = w.Get()
	assert.False(t, info.IsOpen())
	require.NotNil(t, info.FinalPettyCash)
	assert.True(t, info.FinalPettyCash.Equal(decimal.NewFromInt(900)))

	assert.ErrorIs(t, w.FinishWorkDay(decimal.NewFromInt(900), finish), domain.ErrWorkDayClosed)
}

func TestWorkDay_FinishGuards(t *testing.T) {
	_, err := domain.NewWorkDay(nil).Get()
	assert.ErrorIs(t, err, domain.ErrNoWorkDay)
	assert.ErrorIs(t, domain.NewWorkDay(nil).FinishWorkDay(decimal.Zero, t0), domain.ErrNoWorkDay)

	open := func() *domain.WorkDay {
		w := domain.NewWorkDay(nil)
		require.NoError(t, w.StartWorkDay(startParams()))
		return w
	}
	later := t0.Add(time.Hour)

	assert.ErrorIs(t, open().FinishWorkDay(decimal.NewFromInt(-5), later), domain.ErrNegativePettyCash)
	assert.ErrorIs(t, open().FinishWorkDay(decimal.NewFromInt(499), later), domain.ErrPettyCashRegression)
	assert.ErrorIs(t, open().FinishWorkDay(decimal.NewFromInt(500), t0), domain.ErrInvalidFinishDate)
	assert.NoError(t, open().FinishWorkDay(decimal.NewFromInt(500), later))
}
