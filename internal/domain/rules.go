package domain

import "routevendor/internal/model"

// blocksEarlierInventory lists the day operations that freeze a shift-start
// or restock inventory registered before them.
var blocksEarlierInventory = map[DayOperationType]bool{
	OpRouteTransaction:           true,
	OpRestockInventory:           true,
	OpStartShiftInventory:        true,
	OpProductDevolutionInventory: true,
	OpEndShiftInventory:          true,
}

// CanCancelInventoryOperation decides whether op may still be cancelled given
// the shift narrative. It only reads its inputs.
func CanCancelInventoryOperation(ops []model.DayOperation, op model.InventoryOperation) bool {
	if op.State == model.InventoryOperationCancelled {
		return false
	}
	pos := -1
	for i, d := range ops {
		if d.IDItem == op.ID {
			pos = i
			break
		}
	}
	if pos == -1 {
		return false
	}

	switch InventoryOperationType(op.IDInventoryOperationType) {
	case InventoryProductDevolution:
		return false
	case InventoryEndShift:
		return true
	case InventoryStartShift, InventoryRestock:
		for _, later := range ops[pos+1:] {
			if blocksEarlierInventory[DayOperationType(later.OperationType)] {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// NextInventoryOperationType classifies which inventory kind the vendor may
// start next. invOps holds the current inventory operations so their state
// can be consulted; entries missing from it count as not active.
//
// Once a devolution or shift-end exists it dominates: an active devolution
// must be followed by a shift-end, anything else calls for a devolution.
// Otherwise any sale or restock, or an active shift-start, means restock.
func NextInventoryOperationType(ops []model.DayOperation, invOps []model.InventoryOperation) InventoryOperationType {
	states := make(map[string]int, len(invOps))
	for _, io := range invOps {
		states[io.ID] = io.State
	}
	isActive := func(id string) bool {
		state, ok := states[id]
		return ok && state == model.InventoryOperationActive
	}

	var (
		lastClosing *model.DayOperation
		activity    bool
		startShifts []string
	)
	for i := range ops {
		switch DayOperationType(ops[i].OperationType) {
		case OpRestockInventory, OpRouteTransaction:
			activity = true
		case OpEndShiftInventory, OpProductDevolutionInventory:
			lastClosing = &ops[i]
		case OpStartShiftInventory:
			startShifts = append(startShifts, ops[i].IDItem)
		}
	}

	if lastClosing != nil {
		if DayOperationType(lastClosing.OperationType) == OpProductDevolutionInventory && isActive(lastClosing.IDItem) {
			return InventoryEndShift
		}
		return InventoryProductDevolution
	}
	if activity {
		return InventoryRestock
	}
	for _, id := range startShifts {
		if isActive(id) {
			return InventoryRestock
		}
	}
	return InventoryStartShift
}

// IsInventoryTypeAllowed reports whether requested may be registered when the
// progression rule says next. A devolution closes the selling part of the
// shift, so it may also be started while restocks are still possible.
func IsInventoryTypeAllowed(next, requested InventoryOperationType) bool {
	if requested == next {
		return true
	}
	return next == InventoryRestock && requested == InventoryProductDevolution
}
