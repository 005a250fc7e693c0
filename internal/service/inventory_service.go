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

type InventoryService interface {
	Register(ctx context.Context, req dto.RegistrarInventarioRequest) (*dto.InventarioOperacionResponse, error)
	Cancel(ctx context.Context, id string) (*dto.InventarioOperacionResponse, error)
	Cancellable(ctx context.Context, id string) (bool, error)
	NextType(ctx context.Context) (domain.InventoryOperationType, error)
	Stock(ctx context.Context) ([]dto.StockResponse, error)
	Get(ctx context.Context, id string) (*dto.InventarioOperacionResponse, error)
	List(ctx context.Context) ([]dto.InventarioOperacionResponse, error)
}

type inventoryService struct {
	base
}

func NewInventoryService(repos ShiftRepos, locker infra.Locker, opts ...Option) InventoryService {
	return &inventoryService{base: newBase(repos, locker, opts)}
}

// ── Register ─────────────────────────────────────────────────────────────────
//   1. Shift must be open and the requested kind allowed by the progression
//   2. Build the operation with its lines
//   3. Shift-start and restock lines load stock into the ledger
//   4. Record the event in the narrative
//   5. Persist operation, stock delta and narrative in one TX

func (s *inventoryService) Register(ctx context.Context, req dto.RegistrarInventarioRequest) (*dto.InventarioOperacionResponse, error) {
	kind := domain.InventoryOperationType(req.Tipo)
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", domain.ErrInvalidInventoryType, req.Tipo)
	}

	var created model.InventoryOperation
	err := s.locked(ctx, func() error {
		wd, err := s.openWorkDay(ctx)
		if err != nil {
			return err
		}

		ops, err := s.repos.DayOps.List(ctx)
		if err != nil {
			return err
		}
		invOps, err := s.repos.Inventory.List(ctx)
		if err != nil {
			return err
		}
		next := domain.NextInventoryOperationType(ops, invOps)
		if !domain.IsInventoryTypeAllowed(next, kind) {
			return fmt.Errorf("%w: expected %s, got %s", domain.ErrInvalidInventoryType, next, kind)
		}

		now := s.now()
		agg := domain.NewInventoryOperationAggregate(nil)
		agg.Create(s.newID(), req.SignConfirmation, now, req.Audit, kind, wd.IDWorkDay)
		for _, l := range req.Lineas {
			if err := agg.AddLine(s.newID(), l.Price, l.Amount, now, l.ProductID); err != nil {
				return err
			}
		}
		created, _ = agg.Get()

		ledger, err := s.loadLedger(ctx)
		if err != nil {
			return err
		}
		if kind.MovesStock() {
			for _, l := range created.Descriptions {
				if err := s.loadLine(ledger, l); err != nil {
					return err
				}
			}
		}

		seq, err := s.loadSequencer(ctx)
		if err != nil {
			return err
		}
		seq.RegisterInventoryOperation(s.newID(), created.ID, kind, now)

		return runTx(ctx, s.db(), func(tx *gorm.DB) error {
			if err := s.repos.Inventory.Create(ctx, tx, &created); err != nil {
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

	log.Info().Str("inventory_operation_id", created.ID).Str("type", string(kind)).Int("lines", len(created.Descriptions)).Msg("inventory operation registered")
	resp := toInventarioResponse(created)
	return &resp, nil
}

// loadLine adds the line amount to the product's record at the line's price,
// creating the record the first time the product is seen during the shift.
func (s *inventoryService) loadLine(ledger *domain.StockLedger, l model.InventoryOperationDescription) error {
	if rec, ok := ledger.FindByProduct(l.IDProduct); ok {
		return ledger.Load(rec.IDProductInventory, l.Amount, l.PriceAtMoment)
	}
	return ledger.Insert(s.newID(), l.PriceAtMoment, l.Amount, l.IDProduct)
}

// ── Cancel ───────────────────────────────────────────────────────────────────
// A restock gives back what it loaded. Shift-starts are never offered for
// cancellation; the narrative rule decides the rest.

func (s *inventoryService) Cancel(ctx context.Context, id string) (*dto.InventarioOperacionResponse, error) {
	var cancelled model.InventoryOperation
	err := s.locked(ctx, func() error {
		if _, err := s.openWorkDay(ctx); err != nil {
			return err
		}
		op, err := s.repos.Inventory.FindByID(ctx, id)
		if err != nil {
			return notFound(err, ErrInventoryOperationNotFound)
		}
		if op.State == model.InventoryOperationCancelled {
			return domain.ErrAlreadyCancelled
		}
		ops, err := s.repos.DayOps.List(ctx)
		if err != nil {
			return err
		}
		if !s.cancellable(ops, *op) {
			return domain.ErrNotCancellable
		}

		agg := domain.NewInventoryOperationAggregate(op)
		if err := agg.Cancel(); err != nil {
			return err
		}
		cancelled, _ = agg.Get()

		ledger, err := s.loadLedger(ctx)
		if err != nil {
			return err
		}
		if domain.InventoryOperationType(op.IDInventoryOperationType) == domain.InventoryRestock {
			for _, l := range op.Descriptions {
				rec, ok := ledger.FindByProduct(l.IDProduct)
				if !ok {
					return fmt.Errorf("%w: product %s", domain.ErrRecordNotFound, l.IDProduct)
				}
				if err := ledger.Decrease(rec.IDProductInventory, l.Amount); err != nil {
					return err
				}
			}
		}

		return runTx(ctx, s.db(), func(tx *gorm.DB) error {
			if err := s.repos.Inventory.UpdateState(ctx, tx, cancelled.ID, cancelled.State); err != nil {
				return err
			}
			return s.persistLedger(ctx, tx, ledger)
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("inventory_operation_id", id).Msg("inventory operation cancelled")
	resp := toInventarioResponse(cancelled)
	return &resp, nil
}

func (s *inventoryService) cancellable(ops []model.DayOperation, op model.InventoryOperation) bool {
	if domain.InventoryOperationType(op.IDInventoryOperationType) == domain.InventoryStartShift {
		return false
	}
	return domain.CanCancelInventoryOperation(ops, op)
}

// ── Queries ──────────────────────────────────────────────────────────────────

func (s *inventoryService) Cancellable(ctx context.Context, id string) (bool, error) {
	op, err := s.repos.Inventory.FindByID(ctx, id)
	if err != nil {
		return false, notFound(err, ErrInventoryOperationNotFound)
	}
	ops, err := s.repos.DayOps.List(ctx)
	if err != nil {
		return false, err
	}
	return s.cancellable(ops, *op), nil
}

func (s *inventoryService) NextType(ctx context.Context) (domain.InventoryOperationType, error) {
	ops, err := s.repos.DayOps.List(ctx)
	if err != nil {
		return "", err
	}
	invOps, err := s.repos.Inventory.List(ctx)
	if err != nil {
		return "", err
	}
	return domain.NextInventoryOperationType(ops, invOps), nil
}

func (s *inventoryService) Stock(ctx context.Context) ([]dto.StockResponse, error) {
	recs, err := s.repos.Stock.List(ctx)
	if err != nil {
		return nil, err
	}
	return toStockResponses(recs), nil
}

func (s *inventoryService) Get(ctx context.Context, id string) (*dto.InventarioOperacionResponse, error) {
	op, err := s.repos.Inventory.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrInventoryOperationNotFound)
	}
	resp := toInventarioResponse(*op)
	return &resp, nil
}

func (s *inventoryService) List(ctx context.Context) ([]dto.InventarioOperacionResponse, error) {
	ops, err := s.repos.Inventory.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.InventarioOperacionResponse, len(ops))
	for i, op := range ops {
		resp[i] = toInventarioResponse(op)
	}
	return resp, nil
}
