package domain

// DayOperationType tags what a DayOperation.IDItem points to.
type DayOperationType string

const (
	// Scheduled visit to a store of the planned route. IDItem is a store id.
	OpRouteClientAttention DayOperationType = "route_client_attention"
	// Ad-hoc attention of a store outside the route. IDItem is a store id.
	OpAttendClientPetition DayOperationType = "attend_client_petition"
	// Registration of a brand new client. IDItem is a store id.
	OpNewClientRegistration DayOperationType = "new_client_registration"
	// IDItem is a route transaction id.
	OpRouteTransaction DayOperationType = "route_transaction"

	// Inventory operations. IDItem is an inventory operation id.
	OpStartShiftInventory        DayOperationType = "start_shift_inventory"
	OpRestockInventory           DayOperationType = "restock_inventory"
	OpProductDevolutionInventory DayOperationType = "product_devolution_inventory"
	OpEndShiftInventory          DayOperationType = "end_shift_inventory"
)

// InventoryOperationType is the kind of stock-count event. Its values are
// shared with the matching DayOperationType.
type InventoryOperationType string

const (
	InventoryStartShift        = InventoryOperationType(OpStartShiftInventory)
	InventoryRestock           = InventoryOperationType(OpRestockInventory)
	InventoryProductDevolution = InventoryOperationType(OpProductDevolutionInventory)
	InventoryEndShift          = InventoryOperationType(OpEndShiftInventory)
)

// DayOperationType returns the narrative tag used when the inventory
// operation is registered in the day-operation list.
func (t InventoryOperationType) DayOperationType() DayOperationType {
	return DayOperationType(t)
}

// Valid reports whether t is one of the four known inventory kinds.
func (t InventoryOperationType) Valid() bool {
	switch t {
	case InventoryStartShift, InventoryRestock, InventoryProductDevolution, InventoryEndShift:
		return true
	}
	return false
}

// MovesStock reports whether lines of this operation are loaded into the
// stock ledger. Devolution and shift-end inventories are counts only.
func (t InventoryOperationType) MovesStock() bool {
	return t == InventoryStartShift || t == InventoryRestock
}

// IsInventory reports whether the day operation refers to an inventory operation.
func (t DayOperationType) IsInventory() bool {
	return InventoryOperationType(t).Valid()
}
