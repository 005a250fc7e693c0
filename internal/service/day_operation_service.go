package service

import (
	"context"

	"routevendor/internal/domain"
	"routevendor/internal/dto"
	"routevendor/internal/infra"
	"routevendor/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type DayOperationService interface {
	List(ctx context.Context) ([]dto.OperacionDiaResponse, error)
	AttendOutOfRoute(ctx context.Context, storeID string) (*dto.OperacionDiaResponse, error)
	RegisterNewClient(ctx context.Context, storeID string) (*dto.OperacionDiaResponse, error)
}

type dayOperationService struct {
	base
}

func NewDayOperationService(repos ShiftRepos, locker infra.Locker, opts ...Option) DayOperationService {
	return &dayOperationService{base: newBase(repos, locker, opts)}
}

func (s *dayOperationService) List(ctx context.Context) ([]dto.OperacionDiaResponse, error) {
	ops, err := s.repos.DayOps.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.OperacionDiaResponse, len(ops))
	for i, op := range ops {
		op.Position = i
		resp[i] = toOperacionResponse(op)
	}
	return resp, nil
}

func (s *dayOperationService) AttendOutOfRoute(ctx context.Context, storeID string) (*dto.OperacionDiaResponse, error) {
	return s.registerAdHoc(ctx, storeID, domain.OpAttendClientPetition)
}

func (s *dayOperationService) RegisterNewClient(ctx context.Context, storeID string) (*dto.OperacionDiaResponse, error) {
	return s.registerAdHoc(ctx, storeID, domain.OpNewClientRegistration)
}

func (s *dayOperationService) registerAdHoc(ctx context.Context, storeID string, opType domain.DayOperationType) (*dto.OperacionDiaResponse, error) {
	var entry model.DayOperation
	err := s.locked(ctx, func() error {
		if _, err := s.openWorkDay(ctx); err != nil {
			return err
		}
		seq, err := s.loadSequencer(ctx)
		if err != nil {
			return err
		}

		id := s.newID()
		seq.RegisterAdHocEvent(id, storeID, opType, s.now())
		ops := seq.Operations()
		for _, op := range ops {
			if op.ID == id {
				entry = op
				break
			}
		}

		return runTx(ctx, s.db(), func(tx *gorm.DB) error {
			return s.repos.DayOps.ReplaceAll(ctx, tx, ops)
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("store_id", storeID).Str("type", string(opType)).Int("position", entry.Position).Msg("day operation registered")
	resp := toOperacionResponse(entry)
	return &resp, nil
}
