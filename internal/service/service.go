package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"routevendor/internal/domain"
	"routevendor/internal/infra"
	"routevendor/internal/model"
	"routevendor/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lookup errors for entities addressed by id from the API.
var (
	ErrInventoryOperationNotFound = errors.New("inventory operation not found")
	ErrTransactionNotFound        = errors.New("route transaction not found")
)

// shiftLockKey names the single dataset a device works on.
const shiftLockKey = "shift"

// ShiftRepos groups the repositories of the shift-scoped tables.
type ShiftRepos struct {
	WorkDays     repository.WorkDayRepository
	DayOps       repository.DayOperationRepository
	Stock        repository.ProductInventoryRepository
	Inventory    repository.InventoryOperationRepository
	Transactions repository.RouteTransactionRepository
}

// Option customises the collaborators shared by every shift service.
type Option func(*base)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = now }
}

// WithIDGenerator replaces uuid.NewString.
func WithIDGenerator(newID func() string) Option {
	return func(b *base) { b.newID = newID }
}

// base carries what every orchestrator needs: the repositories, the dataset
// lock and the id/clock collaborators.
type base struct {
	repos  ShiftRepos
	locker infra.Locker
	now    func() time.Time
	newID  func() string
}

func newBase(repos ShiftRepos, locker infra.Locker, opts []Option) base {
	b := base{repos: repos, locker: locker, now: time.Now, newID: uuid.NewString}
	for _, o := range opts {
		o(&b)
	}
	return b
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (b *base) db() *gorm.DB {
	if b.repos.WorkDays == nil {
		return nil
	}
	return b.repos.WorkDays.DB()
}

// locked runs fn under the dataset lock. Without a locker fn runs directly.
func (b *base) locked(ctx context.Context, fn func() error) error {
	if b.locker == nil {
		return fn()
	}
	return b.locker.WithLock(ctx, shiftLockKey, fn)
}

// openWorkDay returns the current shift, which must exist and be open.
func (b *base) openWorkDay(ctx context.Context) (*model.WorkDayInformation, error) {
	wd, err := b.repos.WorkDays.FindCurrent(ctx)
	if err != nil {
		return nil, err
	}
	if wd == nil {
		return nil, domain.ErrNoWorkDay
	}
	if !wd.IsOpen() {
		return nil, domain.ErrWorkDayClosed
	}
	return wd, nil
}

// loadLedger builds a stock ledger over the persisted product inventory.
func (b *base) loadLedger(ctx context.Context) (*domain.StockLedger, error) {
	snapshot, err := b.repos.Stock.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewStockLedger(snapshot)
}

// loadSequencer builds a sequencer over the persisted narrative and the
// transactions registered so far.
func (b *base) loadSequencer(ctx context.Context) (*domain.DayOperationSequencer, error) {
	ops, err := b.repos.DayOps.List(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := b.repos.Transactions.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewDayOperationSequencer(ops, txs), nil
}

// persistLedger writes the ledger delta: new records, then the last value of
// every modified record.
func (b *base) persistLedger(ctx context.Context, tx *gorm.DB, ledger *domain.StockLedger) error {
	if err := b.repos.Stock.InsertBatch(ctx, tx, ledger.NewlyInserted()); err != nil {
		return fmt.Errorf("insert stock: %w", err)
	}
	if err := b.repos.Stock.UpdateBatch(ctx, tx, ledger.LatestModified()); err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
