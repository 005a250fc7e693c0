package domain

import "errors"

// State errors: a method was called before its entity existed.
var (
	ErrNoOperation   = errors.New("no inventory operation has been created")
	ErrNoTransaction = errors.New("no route transaction has been created")
	ErrNoWorkDay     = errors.New("no work day has been started")
)

// Uniqueness errors.
var (
	ErrDuplicateRecord  = errors.New("product inventory record already exists")
	ErrDuplicateLine    = errors.New("line item already registered")
	ErrAmbiguousProduct = errors.New("product is mapped to more than one inventory record")
)

// Quantity errors.
var (
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrNegativeAmount      = errors.New("stock amount cannot be negative")
	ErrNegativePettyCash   = errors.New("petty cash cannot be negative")
	ErrPettyCashRegression = errors.New("final petty cash cannot be lower than the starting petty cash")
)

// Lookup errors.
var (
	ErrRecordNotFound = errors.New("product inventory record not found")
	ErrEmptyLedger    = errors.New("stock ledger is empty")
)

// Transition errors.
var (
	ErrAlreadyCancelled      = errors.New("operation is already cancelled")
	ErrInactiveRoute         = errors.New("route is not active")
	ErrInvalidFinishDate     = errors.New("finish date must be after the start date")
	ErrWorkDayAlreadyStarted = errors.New("a work day has already been started")
	ErrWorkDayClosed         = errors.New("work day is already finished")
	ErrNotCancellable        = errors.New("operation can no longer be cancelled")
	ErrInvalidInventoryType  = errors.New("inventory operation type is not allowed at this point of the shift")
)
