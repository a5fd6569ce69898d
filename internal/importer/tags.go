package importer

import (
	"fmt"
	"math/rand"

	"inventra-backend/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const tagRetries = 5

// GenerateAssetTag builds a synthetic tag (prefix + zero-padded 4-digit
// suffix) for imported rows that carry no authoritative tag. Candidates are
// checked against the registry and re-rolled up to tagRetries times; after
// that the last candidate is accepted and the residual collision risk logged
// (the insert's unique index still rejects an actual duplicate).
func GenerateAssetTag(db *gorm.DB, prefix string) string {
	var tag string
	for i := 0; i < tagRetries; i++ {
		tag = fmt.Sprintf("%s%04d", prefix, rand.Intn(10000))
		var count int64
		if err := db.Model(&models.Asset{}).Where("asset_tag = ?", tag).Count(&count).Error; err != nil {
			return tag
		}
		if count == 0 {
			return tag
		}
	}
	log.Warn().Str("asset_tag", tag).Msg("synthetic asset tag still colliding after retries")
	return tag
}
