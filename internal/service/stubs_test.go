package service_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"routevendor/internal/dto"
	"routevendor/internal/infra"
	"routevendor/internal/model"
	"routevendor/internal/repository"
	"routevendor/internal/service"

	"gorm.io/gorm"
)

// ── In-memory shift store ─────────────────────────────────────────────────────

// memStore backs every shift repository stub. Reads and writes copy so the
// services never share slices with the store.
type memStore struct {
	workDay *model.WorkDayInformation
	dayOps  []model.DayOperation
	stock   []model.ProductInventory
	invOps  []model.InventoryOperation
	txs     []model.RouteTransaction
}

type stubWorkDays struct{ s *memStore }

func (r stubWorkDays) FindCurrent(context.Context) (*model.WorkDayInformation, error) {
	if r.s.workDay == nil {
		return nil, nil
	}
	cp := *r.s.workDay
	return &cp, nil
}

func (r stubWorkDays) Save(_ context.Context, _ *gorm.DB, w *model.WorkDayInformation) error {
	cp := *w
	r.s.workDay = &cp
	return nil
}

func (r stubWorkDays) ResetAll(context.Context, *gorm.DB) error {
	*r.s = memStore{}
	return nil
}

func (r stubWorkDays) DB() *gorm.DB { return nil }

var _ repository.WorkDayRepository = stubWorkDays{}

type stubDayOps struct{ s *memStore }

func (r stubDayOps) List(context.Context) ([]model.DayOperation, error) {
	return append([]model.DayOperation(nil), r.s.dayOps...), nil
}

func (r stubDayOps) ReplaceAll(_ context.Context, _ *gorm.DB, ops []model.DayOperation) error {
	r.s.dayOps = append([]model.DayOperation(nil), ops...)
	return nil
}

func (r stubDayOps) DB() *gorm.DB { return nil }

var _ repository.DayOperationRepository = stubDayOps{}

type stubStock struct{ s *memStore }

func (r stubStock) List(context.Context) ([]model.ProductInventory, error) {
	return append([]model.ProductInventory(nil), r.s.stock...), nil
}

func (r stubStock) InsertBatch(_ context.Context, _ *gorm.DB, recs []model.ProductInventory) error {
	r.s.stock = append(r.s.stock, recs...)
	sort.Slice(r.s.stock, func(i, j int) bool { return r.s.stock[i].IDProduct < r.s.stock[j].IDProduct })
	return nil
}

func (r stubStock) UpdateBatch(_ context.Context, _ *gorm.DB, recs []model.ProductInventory) error {
	for _, rec := range recs {
		found := false
		for i := range r.s.stock {
			if r.s.stock[i].IDProductInventory == rec.IDProductInventory {
				r.s.stock[i] = rec
				found = true
			}
		}
		if !found {
			return fmt.Errorf("update of unknown record %s", rec.IDProductInventory)
		}
	}
	return nil
}

var _ repository.ProductInventoryRepository = stubStock{}

type stubInventory struct{ s *memStore }

func (r stubInventory) Create(_ context.Context, _ *gorm.DB, op *model.InventoryOperation) error {
	r.s.invOps = append(r.s.invOps, *op)
	return nil
}

func (r stubInventory) FindByID(_ context.Context, id string) (*model.InventoryOperation, error) {
	for _, op := range r.s.invOps {
		if op.ID == id {
			cp := op
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r stubInventory) List(context.Context) ([]model.InventoryOperation, error) {
	return append([]model.InventoryOperation(nil), r.s.invOps...), nil
}

func (r stubInventory) UpdateState(_ context.Context, _ *gorm.DB, id string, state int) error {
	for i := range r.s.invOps {
		if r.s.invOps[i].ID == id {
			r.s.invOps[i].State = state
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ repository.InventoryOperationRepository = stubInventory{}

type stubTransactions struct{ s *memStore }

func (r stubTransactions) Create(_ context.Context, _ *gorm.DB, t *model.RouteTransaction) error {
	r.s.txs = append(r.s.txs, *t)
	return nil
}

func (r stubTransactions) FindByID(_ context.Context, id string) (*model.RouteTransaction, error) {
	for _, t := range r.s.txs {
		if t.ID == id {
			cp := t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r stubTransactions) List(context.Context) ([]model.RouteTransaction, error) {
	return append([]model.RouteTransaction(nil), r.s.txs...), nil
}

func (r stubTransactions) ListByStore(_ context.Context, storeID string) ([]model.RouteTransaction, error) {
	var out []model.RouteTransaction
	for _, t := range r.s.txs {
		if t.IDStore == storeID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r stubTransactions) UpdateState(_ context.Context, _ *gorm.DB, id, state string) error {
	for i := range r.s.txs {
		if r.s.txs[i].ID == id {
			r.s.txs[i].State = state
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ repository.RouteTransactionRepository = stubTransactions{}

func (m *memStore) repos() service.ShiftRepos {
	return service.ShiftRepos{
		WorkDays:     stubWorkDays{m},
		DayOps:       stubDayOps{m},
		Stock:        stubStock{m},
		Inventory:    stubInventory{m},
		Transactions: stubTransactions{m},
	}
}

// ── Collaborators ─────────────────────────────────────────────────────────────

type captureReports struct{ got []*dto.ShiftReport }

func (c *captureReports) EnqueueShiftReport(_ context.Context, r *dto.ShiftReport) error {
	c.got = append(c.got, r)
	return nil
}

var _ service.ReportQueue = (*captureReports)(nil)

// countingLocker records lock usage; busy makes every call fail.
type countingLocker struct {
	calls int
	busy  bool
}

func (l *countingLocker) WithLock(_ context.Context, _ string, fn func() error) error {
	l.calls++
	if l.busy {
		return infra.ErrLockNotObtained
	}
	return fn()
}

var _ infra.Locker = (*countingLocker)(nil)

// sequentialIDs yields id-1, id-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// tickingClock advances one minute per call.
func tickingClock() func() time.Time {
	t := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}
