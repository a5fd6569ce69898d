package assets

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"inventra-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAssetApp(t *testing.T) (*fiber.App, *gorm.DB) {
	svc, db := setupAssetTest(t)
	h := &Handlers{Service: svc}

	app := fiber.New()
	app.Get("/api/v1/assets", h.List)
	app.Post("/api/v1/assets", h.Create)
	app.Get("/api/v1/assets/:id", h.Get)
	app.Patch("/api/v1/assets/:id", h.Update)
	app.Delete("/api/v1/assets/:id", h.Delete)
	return app, db
}

func TestCreateHandler(t *testing.T) {
	app, db := setupAssetApp(t)

	body, _ := json.Marshal(map[string]interface{}{
		"asset_tag":     "AST-0200",
		"model":         "OptiPlex 7090",
		"purchase_date": "2023-03-15",
		"attributes":    map[string]string{"ram": "16GB"},
	})
	req := httptest.NewRequest("POST", "/api/v1/assets", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var asset models.Asset
	require.NoError(t, db.Where("asset_tag = ?", "AST-0200").First(&asset).Error)
	assert.Equal(t, models.AssetStatusAvailable, asset.Status)
	require.NotNil(t, asset.PurchaseDate)
	assert.Equal(t, "2023-03-15", asset.PurchaseDate.Format("2006-01-02"))
}

// Status is derived state; the registry refuses to accept it over the wire.
func TestCreateHandler_RejectsStatusField(t *testing.T) {
	app, _ := setupAssetApp(t)

	body, _ := json.Marshal(map[string]interface{}{
		"asset_tag": "AST-0201",
		"status":    "Assigned",
	})
	req := httptest.NewRequest("POST", "/api/v1/assets", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(b), "derived")
}

func TestUpdateHandler_RejectsStatusField(t *testing.T) {
	app, db := setupAssetApp(t)

	asset := models.Asset{AssetTag: "AST-0202", Status: models.AssetStatusAvailable}
	require.NoError(t, db.Create(&asset).Error)

	body, _ := json.Marshal(map[string]interface{}{"status": "Lost"})
	req := httptest.NewRequest("PATCH", "/api/v1/assets/"+asset.AssetID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var reloaded models.Asset
	require.NoError(t, db.Where("asset_id = ?", asset.AssetID).First(&reloaded).Error)
	assert.Equal(t, models.AssetStatusAvailable, reloaded.Status)
}

func TestGetHandler_BadID(t *testing.T) {
	app, _ := setupAssetApp(t)

	req := httptest.NewRequest("GET", "/api/v1/assets/not-a-uuid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetHandler_NotFound(t *testing.T) {
	app, _ := setupAssetApp(t)

	req := httptest.NewRequest("GET", "/api/v1/assets/1b671a64-40d5-491e-99b0-da01ff1f3341", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListHandler_UnknownStatusFilter(t *testing.T) {
	app, _ := setupAssetApp(t)

	req := httptest.NewRequest("GET", "/api/v1/assets?status=Sideways", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
