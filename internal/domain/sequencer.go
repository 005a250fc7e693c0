package domain

import (
	"time"

	"routevendor/internal/model"
)

// DayOperationSequencer owns the ordered narrative of one shift and decides
// where new entries land. It is built fresh from a snapshot on every
// orchestration cycle; the list is exclusive state of the instance.
type DayOperationSequencer struct {
	operations []model.DayOperation
	// storeTransactions maps store id → an active route transaction for it.
	storeTransactions map[string]model.RouteTransaction
}

// NewDayOperationSequencer copies ops so later insertions never alias the
// caller's slice. txs is only used to find stores that were already served.
func NewDayOperationSequencer(ops []model.DayOperation, txs []model.RouteTransaction) *DayOperationSequencer {
	s := &DayOperationSequencer{
		storeTransactions: make(map[string]model.RouteTransaction, len(txs)),
	}
	if len(ops) > 0 {
		s.operations = make([]model.DayOperation, len(ops))
		copy(s.operations, ops)
	}
	for _, tx := range txs {
		if tx.State == model.RouteTransactionActive {
			s.storeTransactions[tx.IDStore] = tx
		}
	}
	return s
}

// RegisterScheduledVisit appends a planned store visit. Callers register the
// route in route order.
func (s *DayOperationSequencer) RegisterScheduledVisit(id, storeID string, createdAt time.Time) {
	s.operations = append(s.operations, newDayOperation(id, storeID, OpRouteClientAttention, createdAt))
}

// RegisterOutOfRouteAttention records the attention of a store outside the plan.
func (s *DayOperationSequencer) RegisterOutOfRouteAttention(id, storeID string, createdAt time.Time) {
	s.RegisterAdHocEvent(id, storeID, OpAttendClientPetition, createdAt)
}

// RegisterNewClient records the registration of a new store.
func (s *DayOperationSequencer) RegisterNewClient(id, storeID string, createdAt time.Time) {
	s.RegisterAdHocEvent(id, storeID, OpNewClientRegistration, createdAt)
}

// RegisterRouteTransaction records a sale event next to the current visit.
func (s *DayOperationSequencer) RegisterRouteTransaction(id, transactionID string, createdAt time.Time) {
	s.RegisterAdHocEvent(id, transactionID, OpRouteTransaction, createdAt)
}

// RegisterInventoryOperation records an inventory event next to the current visit.
func (s *DayOperationSequencer) RegisterInventoryOperation(id, operationID string, kind InventoryOperationType, createdAt time.Time) {
	s.RegisterAdHocEvent(id, operationID, kind.DayOperationType(), createdAt)
}

// RegisterAdHocEvent inserts an entry next to the current operation.
//
// When the current operation sits at index 0 the new entry goes in front of
// it instead of after it.
func (s *DayOperationSequencer) RegisterAdHocEvent(id, itemID string, opType DayOperationType, createdAt time.Time) {
	entry := newDayOperation(id, itemID, opType, createdAt)

	if len(s.operations) == 0 {
		s.operations = []model.DayOperation{entry}
		return
	}

	current := s.currentOperationIndex()
	if current <= 0 {
		s.operations = append([]model.DayOperation{entry}, s.operations...)
		return
	}

	at := current + 1
	s.operations = append(s.operations, model.DayOperation{})
	copy(s.operations[at+1:], s.operations[at:])
	s.operations[at] = entry
}

// Operations returns the narrative, or nil when nothing was registered.
func (s *DayOperationSequencer) Operations() []model.DayOperation {
	if len(s.operations) == 0 {
		return nil
	}
	out := make([]model.DayOperation, len(s.operations))
	copy(out, s.operations)
	for i := range out {
		out[i].Position = i
	}
	return out
}

// currentOperationIndex returns the last scheduled visit whose store has no
// active transaction yet. Without such a visit it falls back to the last
// index of the list (0 for an empty list).
func (s *DayOperationSequencer) currentOperationIndex() int {
	candidate := -1
	for i, op := range s.operations {
		if DayOperationType(op.OperationType) != OpRouteClientAttention {
			continue
		}
		if _, served := s.storeTransactions[op.IDItem]; !served {
			candidate = i
		}
	}
	if candidate == -1 && len(s.operations) > 0 {
		candidate = len(s.operations) - 1
	}
	if candidate == -1 {
		candidate = 0
	}
	return candidate
}

func newDayOperation(id, itemID string, opType DayOperationType, createdAt time.Time) model.DayOperation {
	return model.DayOperation{
		ID:            id,
		IDItem:        itemID,
		OperationType: string(opType),
		CreatedAt:     createdAt,
	}
}
