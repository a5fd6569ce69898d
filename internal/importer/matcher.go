package importer

import (
	"inventra-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Decision is the matcher's verdict for one candidate row.
type Decision struct {
	Update     bool
	ExistingID uuid.UUID
}

// MatchAsset decides whether a candidate row updates an existing asset or
// inserts a new one. The serial number is the single dedup key: exact,
// case-sensitive equality. A row with no serial can never be matched and must
// not be merged into an unrelated asset, so it always inserts.
//
// This is the single point of truth for de-duplication; fuzzy matching, if it
// ever comes, replaces only this function.
func MatchAsset(db *gorm.DB, serialNo string) (Decision, error) {
	if serialNo == "" {
		return Decision{}, nil
	}
	var existing models.Asset
	err := db.Select("asset_id").Where("serial_no = ?", serialNo).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return Decision{}, nil
	}
	if err != nil {
		return Decision{}, err
	}
	return Decision{Update: true, ExistingID: existing.AssetID}, nil
}
