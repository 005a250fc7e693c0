package service

import (
	"context"
	"fmt"

	"routevendor/internal/domain"
	"routevendor/internal/dto"
	"routevendor/internal/infra"
	"routevendor/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type RouteTransactionService interface {
	Register(ctx context.Context, req dto.RegistrarTransaccionRequest) (*dto.TransaccionResponse, error)
	Cancel(ctx context.Context, id string) (*dto.TransaccionResponse, error)
	Get(ctx context.Context, id string) (*dto.TransaccionResponse, error)
	ListByStore(ctx context.Context, storeID string) ([]dto.TransaccionResponse, error)
}

type routeTransactionService struct {
	base
}

func NewRouteTransactionService(repos ShiftRepos, locker infra.Locker, opts ...Option) RouteTransactionService {
	return &routeTransactionService{base: newBase(repos, locker, opts)}
}

// ── Register ─────────────────────────────────────────────────────────────────
//   1. Shift must be open
//   2. Each line is priced from its inventory record; sales and repositions
//      take stock out, any shortage aborts the whole transaction
//   3. Record the sale next to the current visit
//   4. Persist transaction, stock delta and narrative in one TX

func (s *routeTransactionService) Register(ctx context.Context, req dto.RegistrarTransaccionRequest) (*dto.TransaccionResponse, error) {
	var created model.RouteTransaction
	err := s.locked(ctx, func() error {
		wd, err := s.openWorkDay(ctx)
		if err != nil {
			return err
		}
		ledger, err := s.loadLedger(ctx)
		if err != nil {
			return err
		}
		if len(ledger.All()) == 0 {
			return domain.ErrEmptyLedger
		}

		now := s.now()
		agg := domain.NewRouteTransactionAggregate(nil)
		agg.Create(s.newID(), now, req.CashReceived, wd.IDWorkDay, req.StoreID, req.PaymentMethod)
		for _, l := range req.Lineas {
			rec, ok := ledger.Get(l.ProductInventoryID)
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrRecordNotFound, l.ProductInventoryID)
			}
			if err := agg.AddLine(s.newID(), rec.PriceAtMoment, l.Amount, now, rec.IDProductInventory, l.Tipo, rec.IDProduct); err != nil {
				return err
			}
			if domain.ConsumesStock(l.Tipo) {
				if err := ledger.Decrease(rec.IDProductInventory, l.Amount); err != nil {
					return err
				}
			}
		}
		created, _ = agg.Get()

		// Built before the new transaction exists, so the store being served
		// still counts as the current visit.
		seq, err := s.loadSequencer(ctx)
		if err != nil {
			return err
		}
		seq.RegisterRouteTransaction(s.newID(), created.ID, now)

		return runTx(ctx, s.db(), func(tx *gorm.DB) error {
			if err := s.repos.Transactions.Create(ctx, tx, &created); err != nil {
				return err
			}
			if err := s.persistLedger(ctx, tx, ledger); err != nil {
				return err
			}
			return s.repos.DayOps.ReplaceAll(ctx, tx, seq.Operations())
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("transaction_id", created.ID).Str("store_id", created.IDStore).Int("lines", len(created.Descriptions)).Msg("route transaction registered")
	resp := toTransaccionResponse(created)
	return &resp, nil
}

// ── Cancel ───────────────────────────────────────────────────────────────────

func (s *routeTransactionService) Cancel(ctx context.Context, id string) (*dto.TransaccionResponse, error) {
	var cancelled model.RouteTransaction
	err := s.locked(ctx, func() error {
		if _, err := s.openWorkDay(ctx); err != nil {
			return err
		}
		t, err := s.repos.Transactions.FindByID(ctx, id)
		if err != nil {
			return notFound(err, ErrTransactionNotFound)
		}
		if t.State == model.RouteTransactionCancelled {
			return domain.ErrAlreadyCancelled
		}

		agg := domain.NewRouteTransactionAggregate(t)
		if err := agg.Cancel(); err != nil {
			return err
		}
		cancelled, _ = agg.Get()

		ledger, err := s.loadLedger(ctx)
		if err != nil {
			return err
		}
		if err := domain.ReverseStock(cancelled, ledger); err != nil {
			return err
		}

		return runTx(ctx, s.db(), func(tx *gorm.DB) error {
			if err := s.repos.Transactions.UpdateState(ctx, tx, cancelled.ID, cancelled.State); err != nil {
				return err
			}
			return s.persistLedger(ctx, tx, ledger)
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("transaction_id", id).Msg("transaction cancelled")
	resp := toTransaccionResponse(cancelled)
	return &resp, nil
}

// ── Queries ──────────────────────────────────────────────────────────────────

func (s *routeTransactionService) Get(ctx context.Context, id string) (*dto.TransaccionResponse, error) {
	t, err := s.repos.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrTransactionNotFound)
	}
	resp := toTransaccionResponse(*t)
	return &resp, nil
}

func (s *routeTransactionService) ListByStore(ctx context.Context, storeID string) ([]dto.TransaccionResponse, error) {
	var (
		txs []model.RouteTransaction
		err error
	)
	if storeID == "" {
		txs, err = s.repos.Transactions.List(ctx)
	} else {
		txs, err = s.repos.Transactions.ListByStore(ctx, storeID)
	}
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TransaccionResponse, len(txs))
	for i, t := range txs {
		resp[i] = toTransaccionResponse(t)
	}
	return resp, nil
}
