package assets

import (
	"encoding/json"

	"inventra-backend/internal/importer"
	"inventra-backend/internal/pkg/faults"
	"inventra-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Handlers holds dependencies for asset registry endpoints.
type Handlers struct {
	Service *Service
}

// List GET /api/v1/assets?status=&department=&kind=
func (h *Handlers) List(c *fiber.Ctx) error {
	assets, err := h.Service.List(c.Context(), ListFilter{
		Status:        c.Query("status"),
		Department:    c.Query("department"),
		EquipmentKind: c.Query("kind"),
	})
	if err != nil {
		return faultError(c, err)
	}
	return response.Success(c, "Assets retrieved", assets, fiber.Map{"count": len(assets)})
}

// Get GET /api/v1/assets/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "asset id must be a valid id", fiber.StatusBadRequest, nil)
	}
	asset, err := h.Service.Get(c.Context(), id)
	if err != nil {
		return faultError(c, err)
	}
	return response.Success(c, "Asset retrieved", asset, nil)
}

// assetBody is the JSON body for create/update. Status is intentionally not
// accepted: it is derived from assignment and maintenance records.
type assetBody struct {
	AssetTag      *string           `json:"asset_tag"`
	EquipmentKind *string           `json:"equipment_kind"`
	Model         *string           `json:"model"`
	SerialNo      *string           `json:"serial_no"`
	Department    *string           `json:"department"`
	Station       *string           `json:"station"`
	Attributes    map[string]string `json:"attributes"`
	PurchaseDate  *string           `json:"purchase_date"`
	Status        *string           `json:"status"`
}

// Create POST /api/v1/assets
func (h *Handlers) Create(c *fiber.Ctx) error {
	var body assetBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if body.Status != nil {
		return response.Error(c, "status cannot be set directly; it is derived from assignments and maintenance", fiber.StatusBadRequest, nil)
	}
	in := CreateInput{
		AssetTag:      deref(body.AssetTag),
		EquipmentKind: deref(body.EquipmentKind),
		Model:         deref(body.Model),
		SerialNo:      deref(body.SerialNo),
		Department:    deref(body.Department),
		Station:       deref(body.Station),
		Attributes:    attrsJSON(body.Attributes),
	}
	if body.PurchaseDate != nil {
		in.PurchaseDate = importer.NormalizeDate(*body.PurchaseDate)
	}
	asset, err := h.Service.Create(c.Context(), in)
	if err != nil {
		return faultError(c, err)
	}
	return response.SuccessCreated(c, "Asset created", asset, nil)
}

// Update PATCH /api/v1/assets/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "asset id must be a valid id", fiber.StatusBadRequest, nil)
	}
	var body assetBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if body.Status != nil {
		return response.Error(c, "status cannot be set directly; it is derived from assignments and maintenance", fiber.StatusBadRequest, nil)
	}
	in := UpdateInput{
		AssetTag:      body.AssetTag,
		EquipmentKind: body.EquipmentKind,
		Model:         body.Model,
		SerialNo:      body.SerialNo,
		Department:    body.Department,
		Station:       body.Station,
		Attributes:    attrsJSON(body.Attributes),
	}
	if body.PurchaseDate != nil {
		in.PurchaseDate = importer.NormalizeDate(*body.PurchaseDate)
	}
	asset, err := h.Service.Update(c.Context(), id, in)
	if err != nil {
		return faultError(c, err)
	}
	return response.Success(c, "Asset updated", asset, nil)
}

// Delete DELETE /api/v1/assets/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "asset id must be a valid id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		return faultError(c, err)
	}
	return response.Success(c, "Asset deleted", nil, nil)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func attrsJSON(m map[string]string) datatypes.JSON {
	if len(m) == 0 {
		return nil
	}
	b, _ := json.Marshal(m)
	return datatypes.JSON(b)
}

func faultError(c *fiber.Ctx, err error) error {
	kind := faults.KindOf(err)
	details := fiber.Map{}
	if kind != "" {
		details["kind"] = string(kind)
	}
	return response.Error(c, err.Error(), faults.StatusCode(err), details)
}
