package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Asset statuses. Status is a derived cache: only the lifecycle service, the
// import reconciler and the maintenance service may write it.
const (
	AssetStatusAvailable        = "Available"
	AssetStatusAssigned         = "Assigned"
	AssetStatusServiceable      = "Serviceable"
	AssetStatusUnserviceable    = "Unserviceable"
	AssetStatusUnderMaintenance = "UnderMaintenance"
	AssetStatusInStorage        = "InStorage"
	AssetStatusStolen           = "Stolen"
	AssetStatusLost             = "Lost"
	AssetStatusDamaged          = "Damaged"
)

// AssetStatuses lists every valid asset status, for request validation.
var AssetStatuses = []string{
	AssetStatusAvailable,
	AssetStatusAssigned,
	AssetStatusServiceable,
	AssetStatusUnserviceable,
	AssetStatusUnderMaintenance,
	AssetStatusInStorage,
	AssetStatusStolen,
	AssetStatusLost,
	AssetStatusDamaged,
}

// ValidAssetStatus reports whether s is a known asset status.
func ValidAssetStatus(s string) bool {
	for _, v := range AssetStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Asset is a tracked physical item. SerialNo is the natural dedup key during
// import; empty serials are allowed (multiple rows may legitimately lack one),
// so uniqueness on serial_no is enforced in the matcher, not the schema.
type Asset struct {
	AssetID             uuid.UUID      `gorm:"column:asset_id;type:uuid;primaryKey" json:"asset_id"`
	AssetTag            string         `gorm:"column:asset_tag;not null;uniqueIndex" json:"asset_tag"`
	EquipmentKind       string         `gorm:"column:equipment_kind" json:"equipment_kind"`
	Model               string         `gorm:"column:model" json:"model"`
	SerialNo            string         `gorm:"column:serial_no;index" json:"serial_no"`
	Status              string         `gorm:"column:status;not null;default:Available" json:"status"`
	Department          string         `gorm:"column:department" json:"department"`
	Station             string         `gorm:"column:station" json:"station"`
	Attributes          datatypes.JSON `gorm:"column:attributes;type:jsonb" json:"attributes"`
	PurchaseDate        *time.Time     `gorm:"column:purchase_date" json:"purchase_date"`
	LastMaintenanceDate *time.Time     `gorm:"column:last_maintenance_date" json:"last_maintenance_date"`
	NextMaintenanceDate *time.Time     `gorm:"column:next_maintenance_date" json:"next_maintenance_date"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Asset) TableName() string {
	return "assets"
}

func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.AssetID == uuid.Nil {
		a.AssetID = uuid.New()
	}
	return nil
}
