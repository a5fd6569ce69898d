package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssignmentHistory is an append-only log written by the import reconciler for
// assignments that predate the system (the spreadsheet names a holder but no
// user account exists for them). Assignee is kept as the imported free-form
// name, not a user reference.
type AssignmentHistory struct {
	HistoryID    uuid.UUID `gorm:"column:history_id;type:uuid;primaryKey" json:"history_id"`
	AssetID      uuid.UUID `gorm:"column:asset_id;type:uuid;not null;index" json:"asset_id"`
	AssigneeName string    `gorm:"column:assignee_name;not null" json:"assignee_name"`
	Date         time.Time `gorm:"column:date;not null" json:"date"`
	Reason       string    `gorm:"column:reason" json:"reason"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (AssignmentHistory) TableName() string {
	return "assignment_history"
}

func (h *AssignmentHistory) BeforeCreate(tx *gorm.DB) error {
	if h.HistoryID == uuid.Nil {
		h.HistoryID = uuid.New()
	}
	return nil
}
