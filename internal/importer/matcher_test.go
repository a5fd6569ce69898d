package importer

import (
	"testing"

	"inventra-backend/internal/database"
	"inventra-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupImportTest(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestMatchAsset_EmptySerialAlwaysInserts(t *testing.T) {
	db := setupImportTest(t)
	require.NoError(t, db.Create(&models.Asset{AssetTag: "AST-0001", SerialNo: ""}).Error)

	decision, err := MatchAsset(db, "")
	require.NoError(t, err)
	assert.False(t, decision.Update)
}

func TestMatchAsset_ExistingSerialUpdates(t *testing.T) {
	db := setupImportTest(t)
	existing := models.Asset{AssetTag: "AST-0002", SerialNo: "SN-100"}
	require.NoError(t, db.Create(&existing).Error)

	decision, err := MatchAsset(db, "SN-100")
	require.NoError(t, err)
	assert.True(t, decision.Update)
	assert.Equal(t, existing.AssetID, decision.ExistingID)
}

func TestMatchAsset_UnknownSerialInserts(t *testing.T) {
	db := setupImportTest(t)
	decision, err := MatchAsset(db, "SN-404")
	require.NoError(t, err)
	assert.False(t, decision.Update)
}

// Matching is exact and case-sensitive; "sn-100" is not "SN-100".
func TestMatchAsset_CaseSensitive(t *testing.T) {
	db := setupImportTest(t)
	require.NoError(t, db.Create(&models.Asset{AssetTag: "AST-0003", SerialNo: "SN-100"}).Error)

	decision, err := MatchAsset(db, "sn-100")
	require.NoError(t, err)
	assert.False(t, decision.Update)
}
