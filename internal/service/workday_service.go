package service

import (
	"context"
	"sort"

	"routevendor/internal/domain"
	"routevendor/internal/dto"
	"routevendor/internal/infra"
	"routevendor/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportQueue receives the report of every finished shift.
type ReportQueue interface {
	EnqueueShiftReport(ctx context.Context, report *dto.ShiftReport) error
}

type WorkDayService interface {
	Start(ctx context.Context, req dto.IniciarJornadaRequest) (*dto.JornadaResponse, error)
	Finish(ctx context.Context, req dto.FinalizarJornadaRequest) (*dto.JornadaResponse, error)
	Current(ctx context.Context) (*dto.JornadaResponse, error)
	Reset(ctx context.Context) error
}

type workDayService struct {
	base
	reports ReportQueue
}

func NewWorkDayService(repos ShiftRepos, locker infra.Locker, reports ReportQueue, opts ...Option) WorkDayService {
	return &workDayService{base: newBase(repos, locker, opts), reports: reports}
}

// ── Start ────────────────────────────────────────────────────────────────────
// Opens the shift and seeds the narrative with one scheduled visit per route
// store, in route order.

func (s *workDayService) Start(ctx context.Context, req dto.IniciarJornadaRequest) (*dto.JornadaResponse, error) {
	var started model.WorkDayInformation
	err := s.locked(ctx, func() error {
		current, err := s.repos.WorkDays.FindCurrent(ctx)
		if err != nil {
			return err
		}
		wd := domain.NewWorkDay(current)
		now := s.now()
		if err := wd.StartWorkDay(domain.StartWorkDayParams{
			ID:             s.newID(),
			StartDate:      now,
			StartPettyCash: req.StartPettyCash,
			RouteID:        req.RouteID,
			RouteName:      req.RouteName,
			Description:    req.Description,
			RouteStatus:    req.RouteStatus,
			DayID:          req.DayID,
			RouteDayID:     req.RouteDayID,
		}); err != nil {
			return err
		}
		started, _ = wd.Get()

		stores := append([]dto.RouteStoreRequest(nil), req.Stores...)
		sort.SliceStable(stores, func(i, j int) bool { return stores[i].Position < stores[j].Position })

		seq := domain.NewDayOperationSequencer(nil, nil)
		for _, st := range stores {
			seq.RegisterScheduledVisit(s.newID(), st.StoreID, now)
		}

		return runTx(ctx, s.db(), func(tx *gorm.DB) error {
			if err := s.repos.WorkDays.Save(ctx, tx, &started); err != nil {
				return err
			}
			return s.repos.DayOps.ReplaceAll(ctx, tx, seq.Operations())
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("work_day_id", started.IDWorkDay).
		Str("route", started.RouteName).
		Int("stores", len(req.Stores)).
		Msg("work day started")
	return toJornadaResponse(&started), nil
}

// ── Finish ───────────────────────────────────────────────────────────────────

func (s *workDayService) Finish(ctx context.Context, req dto.FinalizarJornadaRequest) (*dto.JornadaResponse, error) {
	var finished model.WorkDayInformation
	err := s.locked(ctx, func() error {
		current, err := s.repos.WorkDays.FindCurrent(ctx)
		if err != nil {
			return err
		}
		wd := domain.NewWorkDay(current)
		if err := wd.FinishWorkDay(req.FinalPettyCash, s.now()); err != nil {
			return err
		}
		finished, _ = wd.Get()
		return runTx(ctx, s.db(), func(tx *gorm.DB) error {
			return s.repos.WorkDays.Save(ctx, tx, &finished)
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("work_day_id", finished.IDWorkDay).Msg("work day finished")
	s.queueReport(ctx, &finished)
	return toJornadaResponse(&finished), nil
}

// queueReport is best effort: the shift is already closed when it runs.
func (s *workDayService) queueReport(ctx context.Context, wd *model.WorkDayInformation) {
	if s.reports == nil {
		return
	}
	report, err := s.buildReport(ctx, wd)
	if err != nil {
		log.Error().Err(err).Str("work_day_id", wd.IDWorkDay).Msg("shift report: build failed")
		return
	}
	if err := s.reports.EnqueueShiftReport(ctx, report); err != nil {
		log.Error().Err(err).Str("work_day_id", wd.IDWorkDay).Msg("shift report: enqueue failed")
	}
}

func (s *workDayService) buildReport(ctx context.Context, wd *model.WorkDayInformation) (*dto.ShiftReport, error) {
	txs, err := s.repos.Transactions.List(ctx)
	if err != nil {
		return nil, err
	}
	invOps, err := s.repos.Inventory.List(ctx)
	if err != nil {
		return nil, err
	}
	stock, err := s.repos.Stock.List(ctx)
	if err != nil {
		return nil, err
	}

	report := &dto.ShiftReport{
		WorkDayID:       wd.IDWorkDay,
		RouteName:       wd.RouteName,
		StartDate:       wd.StartDate.Format(timeLayout),
		StartPettyCash:  wd.StartPettyCash,
		VentasPorMetodo: make(map[string]decimal.Decimal),
		TotalVentas:     decimal.Zero,
		Stock:           toStockResponses(stock),
	}
	if wd.FinishDate != nil {
		report.FinishDate = wd.FinishDate.Format(timeLayout)
	}
	if wd.FinalPettyCash != nil {
		report.FinalPettyCash = *wd.FinalPettyCash
	}

	for _, t := range txs {
		if t.State != model.RouteTransactionActive {
			report.TransaccionesCanceladas++
			continue
		}
		report.TransaccionesActivas++
		total := transactionTotal(t)
		report.VentasPorMetodo[t.PaymentMethod] = report.VentasPorMetodo[t.PaymentMethod].Add(total)
		report.TotalVentas = report.TotalVentas.Add(total)
	}
	for _, op := range invOps {
		report.Inventarios = append(report.Inventarios, dto.ShiftReportInventory{
			ID:     op.ID,
			Tipo:   op.IDInventoryOperationType,
			Estado: inventoryEstado(op.State),
			Date:   op.Date.Format(timeLayout),
			Lineas: len(op.Descriptions),
		})
	}
	return report, nil
}

// ── Current / Reset ──────────────────────────────────────────────────────────

func (s *workDayService) Current(ctx context.Context) (*dto.JornadaResponse, error) {
	wd, err := s.repos.WorkDays.FindCurrent(ctx)
	if err != nil {
		return nil, err
	}
	if wd == nil {
		return nil, domain.ErrNoWorkDay
	}
	return toJornadaResponse(wd), nil
}

// Reset wipes every shift-scoped table so a new shift can start.
func (s *workDayService) Reset(ctx context.Context) error {
	err := s.locked(ctx, func() error {
		return runTx(ctx, s.db(), func(tx *gorm.DB) error {
			return s.repos.WorkDays.ResetAll(ctx, tx)
		})
	})
	if err == nil {
		log.Warn().Msg("shift data reset")
	}
	return err
}
