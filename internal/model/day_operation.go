package model

import "time"

// DayOperation is one entry of the shift narrative.
// IDItem points to a store, a route transaction or an inventory operation
// depending on OperationType.
type DayOperation struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	IDItem        string    `gorm:"column:id_item;type:varchar(36);not null;index" json:"id_item"`
	OperationType string    `gorm:"column:operation_type;type:varchar(40);not null" json:"operation_type"`
	CreatedAt     time.Time `gorm:"column:created_at;not null" json:"created_at"`
	// Position is the index of the entry in the narrative list. The list is
	// rewritten as a whole on every insertion, so positions stay dense.
	Position int `gorm:"not null;default:0;index" json:"-"`
}

func (DayOperation) TableName() string { return "day_operations" }
