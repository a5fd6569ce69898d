package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Maintenance types.
const (
	MaintenanceTypeScheduled  = "Scheduled"
	MaintenanceTypePreventive = "Preventive"
	MaintenanceTypeCorrective = "Corrective"
	MaintenanceTypeEmergency  = "Emergency"
)

// ValidMaintenanceType reports whether t is a known maintenance type.
func ValidMaintenanceType(t string) bool {
	switch t {
	case MaintenanceTypeScheduled, MaintenanceTypePreventive, MaintenanceTypeCorrective, MaintenanceTypeEmergency:
		return true
	}
	return false
}

// MaintenanceRecord logs work performed on an asset. Its urgency
// classification (Completed/Overdue/DueSoon/Scheduled) is derived from
// NextMaintenanceDate at read time and never stored.
type MaintenanceRecord struct {
	RecordID            uuid.UUID  `gorm:"column:record_id;type:uuid;primaryKey" json:"record_id"`
	AssetID             uuid.UUID  `gorm:"column:asset_id;type:uuid;not null;index" json:"asset_id"`
	MaintenanceType     string     `gorm:"column:maintenance_type;not null" json:"maintenance_type"`
	TechnicianID        uuid.UUID  `gorm:"column:technician_id;type:uuid;not null" json:"technician_id"`
	DatePerformed       time.Time  `gorm:"column:date_performed;not null" json:"date_performed"`
	NextMaintenanceDate *time.Time `gorm:"column:next_maintenance_date" json:"next_maintenance_date"`
	Issue               string     `gorm:"column:issue;type:text" json:"issue"`
	PartsUsed           string     `gorm:"column:parts_used" json:"parts_used"`
	TimeSpentMinutes    int        `gorm:"column:time_spent_minutes" json:"time_spent_minutes"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

func (MaintenanceRecord) TableName() string {
	return "maintenance_records"
}

func (m *MaintenanceRecord) BeforeCreate(tx *gorm.DB) error {
	if m.RecordID == uuid.Nil {
		m.RecordID = uuid.New()
	}
	return nil
}
