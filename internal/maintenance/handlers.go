package maintenance

import (
	"inventra-backend/internal/auth"
	"inventra-backend/internal/importer"
	"inventra-backend/internal/pkg/faults"
	"inventra-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers holds dependencies for maintenance endpoints.
type Handlers struct {
	Service *Service
}

// CreateRequest body.
type CreateRequest struct {
	AssetID             string `json:"asset_id"`
	MaintenanceType     string `json:"maintenance_type"`
	DatePerformed       string `json:"date_performed"`
	NextMaintenanceDate string `json:"next_maintenance_date"`
	Issue               string `json:"issue"`
	PartsUsed           string `json:"parts_used"`
	TimeSpentMinutes    int    `json:"time_spent_minutes"`
}

// Create POST /api/v1/maintenance
func (h *Handlers) Create(c *fiber.Ctx) error {
	actor, err := auth.ActorFromSession(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	assetID, err := uuid.Parse(req.AssetID)
	if err != nil {
		return response.Error(c, "asset_id must be a valid id", fiber.StatusBadRequest, nil)
	}

	record, err := h.Service.Create(c.Context(), CreateInput{
		AssetID:             assetID,
		MaintenanceType:     req.MaintenanceType,
		DatePerformed:       importer.NormalizeDate(req.DatePerformed),
		NextMaintenanceDate: importer.NormalizeDate(req.NextMaintenanceDate),
		Issue:               req.Issue,
		PartsUsed:           req.PartsUsed,
		TimeSpentMinutes:    req.TimeSpentMinutes,
	}, actor)
	if err != nil {
		return faultError(c, err)
	}
	return response.SuccessCreated(c, "Maintenance recorded", record, nil)
}

// ListForAsset GET /api/v1/assets/:id/maintenance
func (h *Handlers) ListForAsset(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "asset id must be a valid id", fiber.StatusBadRequest, nil)
	}
	records, err := h.Service.ListForAsset(c.Context(), id)
	if err != nil {
		return faultError(c, err)
	}
	return response.Success(c, "Maintenance records retrieved", records, fiber.Map{"count": len(records)})
}

// Summary GET /api/v1/maintenance/summary
func (h *Handlers) Summary(c *fiber.Ctx) error {
	summary, err := h.Service.GetSummary(c.Context())
	if err != nil {
		return faultError(c, err)
	}
	return response.Success(c, "Maintenance summary", summary, nil)
}

func faultError(c *fiber.Ctx, err error) error {
	kind := faults.KindOf(err)
	details := fiber.Map{}
	if kind != "" {
		details["kind"] = string(kind)
	}
	return response.Error(c, err.Error(), faults.StatusCode(err), details)
}
