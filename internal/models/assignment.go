package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assignment statuses. At most one Active assignment may exist per asset;
// a partial unique index on (asset_id) WHERE status = 'Active' enforces it
// (see database.Migrate).
const (
	AssignmentStatusActive   = "Active"
	AssignmentStatusReturned = "Returned"
	AssignmentStatusOverdue  = "Overdue"
	AssignmentStatusLost     = "Lost"
	AssignmentStatusDamaged  = "Damaged"
)

// Assignment is a time-bounded custody relationship between an asset and a
// person. Rows are never deleted; terminal transitions only change status and
// append to Notes.
type Assignment struct {
	AssignmentID       uuid.UUID  `gorm:"column:assignment_id;type:uuid;primaryKey" json:"assignment_id"`
	AssetID            uuid.UUID  `gorm:"column:asset_id;type:uuid;not null;index" json:"asset_id"`
	AssigneeID         uuid.UUID  `gorm:"column:assignee_id;type:uuid;not null" json:"assignee_id"`
	AssignedBy         uuid.UUID  `gorm:"column:assigned_by;type:uuid;not null" json:"assigned_by"`
	AssignmentDate     time.Time  `gorm:"column:assignment_date;not null" json:"assignment_date"`
	ExpectedReturnDate *time.Time `gorm:"column:expected_return_date" json:"expected_return_date"`
	ActualReturnDate   *time.Time `gorm:"column:actual_return_date" json:"actual_return_date"`
	Status             string     `gorm:"column:status;not null;default:Active" json:"status"`
	Notes              string     `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func (Assignment) TableName() string {
	return "assignments"
}

func (a *Assignment) BeforeCreate(tx *gorm.DB) error {
	if a.AssignmentID == uuid.Nil {
		a.AssignmentID = uuid.New()
	}
	return nil
}

// Open reports whether the assignment still holds custody (Active or Overdue),
// i.e. whether a terminal transition is allowed.
func (a *Assignment) Open() bool {
	return a.Status == AssignmentStatusActive || a.Status == AssignmentStatusOverdue
}
