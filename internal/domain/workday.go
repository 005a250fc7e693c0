package domain

import (
	"time"

	"routevendor/internal/model"

	"github.com/shopspring/decimal"
)

// StartWorkDayParams carries the data of a shift opening.
type StartWorkDayParams struct {
	ID             string
	StartDate      time.Time
	StartPettyCash decimal.Decimal
	RouteID        string
	RouteName      string
	Description    string
	RouteStatus    bool
	DayID          string
	RouteDayID     string
}

// WorkDay moves a shift strictly forward: unstarted → open → closed.
type WorkDay struct {
	info *model.WorkDayInformation
}

// NewWorkDay wraps the stored shift, or nil when none exists yet.
func NewWorkDay(existing *model.WorkDayInformation) *WorkDay {
	w := &WorkDay{}
	if existing != nil {
		cp := *existing
		w.info = &cp
	}
	return w
}

// StartWorkDay opens a new shift.
func (w *WorkDay) StartWorkDay(p StartWorkDayParams) error {
	if w.info != nil {
		return ErrWorkDayAlreadyStarted
	}
	if p.StartPettyCash.IsNegative() {
		return ErrNegativePettyCash
	}
	if !p.RouteStatus {
		return ErrInactiveRoute
	}
	w.info = &model.WorkDayInformation{
		IDWorkDay:      p.ID,
		StartDate:      p.StartDate,
		StartPettyCash: p.StartPettyCash,
		IDRoute:        p.RouteID,
		RouteName:      p.RouteName,
		Description:    p.Description,
		RouteStatus:    p.RouteStatus,
		IDDay:          p.DayID,
		IDRouteDay:     p.RouteDayID,
	}
	return nil
}

// FinishWorkDay closes the shift. The closing cash may not be negative or
// below the opening cash, and the finish date must follow the start date.
func (w *WorkDay) FinishWorkDay(finalPettyCash decimal.Decimal, finishDate time.Time) error {
	if w.info == nil {
		return ErrNoWorkDay
	}
	if !w.info.IsOpen() {
		return ErrWorkDayClosed
	}
	if finalPettyCash.IsNegative() {
		return ErrNegativePettyCash
	}
	if finalPettyCash.LessThan(w.info.StartPettyCash) {
		return ErrPettyCashRegression
	}
	if !finishDate.After(w.info.StartDate) {
		return ErrInvalidFinishDate
	}
	next := *w.info
	next.FinalPettyCash = &finalPettyCash
	next.FinishDate = &finishDate
	w.info = &next
	return nil
}

// Get returns a copy of the shift.
func (w *WorkDay) Get() (model.WorkDayInformation, error) {
	if w.info == nil {
		return model.WorkDayInformation{}, ErrNoWorkDay
	}
	return *w.info, nil
}
