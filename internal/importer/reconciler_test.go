package importer

import (
	"context"
	"strings"
	"testing"

	"inventra-backend/internal/auth"
	"inventra-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testActor() auth.Actor {
	return auth.Actor{UserID: uuid.New(), Fullname: "Import Admin", Role: "admin"}
}

func sampleRows() []map[string]interface{} {
	return []map[string]interface{}{
		{
			"Employee":      "J. Doe",
			"Serial Number": "SN-001",
			"Model":         "ThinkPad T14",
			"Equipment":     "Laptop",
			"Purchase Date": "15/03/2023",
			"RAM":           "16GB",
		},
		{
			"Employee":      "M. Smith",
			"Serial Number": "SN-002",
			"Model":         "OptiPlex 7090",
			"Equipment":     "Desktop",
		},
	}
}

func TestReconcile_InsertsNewAssets(t *testing.T) {
	db := setupImportTest(t)
	svc := &Service{DB: db, TagPrefix: "AST-"}

	report := svc.Reconcile(context.Background(), sampleRows(), testActor())
	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, 0, report.Errors)
	assert.True(t, report.Success())

	var assets []models.Asset
	require.NoError(t, db.Order("serial_no").Find(&assets).Error)
	require.Len(t, assets, 2)
	assert.Equal(t, "SN-001", assets[0].SerialNo)
	assert.Equal(t, models.AssetStatusAvailable, assets[0].Status)
	assert.Equal(t, "2023-03-15", FormatDate(assets[0].PurchaseDate))
	assert.True(t, strings.HasPrefix(assets[0].AssetTag, "AST-"), "synthetic tag: %s", assets[0].AssetTag)
	assert.Len(t, assets[0].AssetTag, len("AST-")+4)

	// Initial assignment history, dated at purchase date.
	var history []models.AssignmentHistory
	require.NoError(t, db.Where("asset_id = ?", assets[0].AssetID).Find(&history).Error)
	require.Len(t, history, 1)
	assert.Equal(t, "J. Doe", history[0].AssigneeName)
	assert.Equal(t, "Initial assignment", history[0].Reason)
	assert.Equal(t, "2023-03-15", history[0].Date.Format("2006-01-02"))
}

// Re-running an identical batch matches by serial and updates; the registry
// does not grow and no duplicate history rows appear.
func TestReconcile_Idempotent(t *testing.T) {
	db := setupImportTest(t)
	svc := &Service{DB: db, TagPrefix: "AST-"}

	first := svc.Reconcile(context.Background(), sampleRows(), testActor())
	require.Equal(t, 2, first.Imported)

	second := svc.Reconcile(context.Background(), sampleRows(), testActor())
	assert.Equal(t, 2, second.Imported)
	assert.Equal(t, 0, second.Errors)

	var assetCount, historyCount int64
	require.NoError(t, db.Model(&models.Asset{}).Count(&assetCount).Error)
	require.NoError(t, db.Model(&models.AssignmentHistory{}).Count(&historyCount).Error)
	assert.EqualValues(t, 2, assetCount)
	assert.EqualValues(t, 2, historyCount)
}

// Spec scenario: 3 rows, row 2 has no display name -> imported=2, errors=1,
// exactly one detail referencing row 2.
func TestReconcile_RowValidationIsolated(t *testing.T) {
	db := setupImportTest(t)
	svc := &Service{DB: db, TagPrefix: "AST-"}

	rows := []map[string]interface{}{
		{"Employee": "A. One", "Serial Number": "SN-A"},
		{"Employee": "", "Serial Number": ""},
		{"Employee": "C. Three", "Serial Number": "SN-C"},
	}
	report := svc.Reconcile(context.Background(), rows, testActor())
	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, 1, report.Errors)
	require.Len(t, report.Details, 1)
	assert.Equal(t, "row 2", report.Details[0].Key)
	assert.Contains(t, report.Details[0].Message, "full name")
}

// A persistence failure on one row keys the detail by serial number and the
// batch continues.
func TestReconcile_PersistenceErrorKeyedBySerial(t *testing.T) {
	db := setupImportTest(t)
	svc := &Service{DB: db, TagPrefix: "AST-"}

	// Occupy the tag so the second row's explicit tag collides.
	require.NoError(t, db.Create(&models.Asset{AssetTag: "TAG-1", SerialNo: "SN-OTHER"}).Error)

	rows := []map[string]interface{}{
		{"Employee": "A. One", "Serial Number": "SN-A"},
		{"Employee": "B. Two", "Serial Number": "SN-B", "Asset Tag": "TAG-1"},
		{"Employee": "C. Three", "Serial Number": "SN-C"},
	}
	report := svc.Reconcile(context.Background(), rows, testActor())
	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, 1, report.Errors)
	require.Len(t, report.Details, 1)
	assert.Equal(t, "SN-B", report.Details[0].Key)
}

// Updates never touch the derived status field.
func TestReconcile_UpdatePreservesStatus(t *testing.T) {
	db := setupImportTest(t)
	svc := &Service{DB: db, TagPrefix: "AST-"}

	require.NoError(t, db.Create(&models.Asset{
		AssetTag: "AST-9999",
		SerialNo: "SN-001",
		Status:   models.AssetStatusAssigned,
	}).Error)

	report := svc.Reconcile(context.Background(), sampleRows(), testActor())
	assert.Equal(t, 2, report.Imported)

	var asset models.Asset
	require.NoError(t, db.Where("serial_no = ?", "SN-001").First(&asset).Error)
	assert.Equal(t, models.AssetStatusAssigned, asset.Status)
	assert.Equal(t, "ThinkPad T14", asset.Model)
}

// Cancellation between rows returns the partial report; committed rows stay.
func TestReconcile_Cancelled(t *testing.T) {
	db := setupImportTest(t)
	svc := &Service{DB: db, TagPrefix: "AST-"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report := svc.Reconcile(ctx, sampleRows(), testActor())
	assert.Equal(t, 0, report.Imported)
	assert.False(t, report.Success())
}
