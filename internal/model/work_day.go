package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkDayInformation is the envelope of one vendor shift. FinishDate and
// FinalPettyCash stay nil while the shift is open.
type WorkDayInformation struct {
	IDWorkDay      string           `gorm:"column:id_work_day;type:varchar(36);primaryKey" json:"id_work_day"`
	StartDate      time.Time        `gorm:"column:start_date;not null" json:"start_date"`
	FinishDate     *time.Time       `gorm:"column:finish_date" json:"finish_date"`
	StartPettyCash decimal.Decimal  `gorm:"column:start_petty_cash;type:decimal(12,2);not null" json:"start_petty_cash"`
	FinalPettyCash *decimal.Decimal `gorm:"column:final_petty_cash;type:decimal(12,2)" json:"final_petty_cash"`
	IDRoute        string           `gorm:"column:id_route;type:varchar(36);not null" json:"id_route"`
	RouteName      string           `gorm:"column:route_name;not null" json:"route_name"`
	Description    string           `json:"description"`
	RouteStatus    bool             `gorm:"column:route_status;not null" json:"route_status"`
	IDDay          string           `gorm:"column:id_day;type:varchar(36)" json:"id_day"`
	IDRouteDay     string           `gorm:"column:id_route_day;type:varchar(36)" json:"id_route_day"`
}

func (WorkDayInformation) TableName() string { return "work_day_information" }

// IsOpen reports whether the shift has not been finished yet.
func (w *WorkDayInformation) IsOpen() bool { return w.FinishDate == nil }
