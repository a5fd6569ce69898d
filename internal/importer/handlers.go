package importer

import (
	"inventra-backend/internal/auth"
	"inventra-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds dependencies for import endpoints.
type Handlers struct {
	Service *Service
}

// ImportRequest is the JSON body alternative to a workbook upload.
type ImportRequest struct {
	Rows []map[string]interface{} `json:"rows"`
}

// Import POST /api/v1/assets/import — multipart .xlsx upload (field "file")
// or JSON {rows: [...]}. Returns the reconcile report; partial failure is
// still a 200 with the per-row details.
func (h *Handlers) Import(c *fiber.Ctx) error {
	actor, err := auth.ActorFromSession(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var rows []map[string]interface{}
	if file, err := c.FormFile("file"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			return response.Error(c, "Could not read uploaded file", fiber.StatusBadRequest, nil)
		}
		defer src.Close()
		rows, err = ParseWorkbook(src)
		if err != nil {
			return response.Error(c, "Invalid workbook: "+err.Error(), fiber.StatusBadRequest, nil)
		}
	} else {
		var req ImportRequest
		if err := c.BodyParser(&req); err != nil {
			return response.Error(c, "Provide an .xlsx file or a rows array", fiber.StatusBadRequest, nil)
		}
		rows = req.Rows
	}
	if len(rows) == 0 {
		return response.Error(c, "No rows to import", fiber.StatusBadRequest, nil)
	}

	report := h.Service.Reconcile(c.Context(), rows, actor)

	message := "Import completed"
	if !report.Success() {
		message = "Import completed with no rows imported"
	}
	return response.Success(c, message, report, fiber.Map{
		"total_rows": len(rows),
	})
}
