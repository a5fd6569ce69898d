package lifecycle

import (
	"context"

	"inventra-backend/internal/auth"
	"inventra-backend/internal/importer"
	"inventra-backend/internal/pkg/faults"
	"inventra-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers holds dependencies for assignment endpoints.
type Handlers struct {
	Service *Service
}

// AssignRequest body.
type AssignRequest struct {
	AssetID            string `json:"asset_id"`
	AssigneeID         string `json:"assignee_id"`
	ExpectedReturnDate string `json:"expected_return_date"`
	Notes              string `json:"notes"`
}

// TransitionRequest body for return/lost/damaged.
type TransitionRequest struct {
	Date  string `json:"date"`
	Notes string `json:"notes"`
}

// Assign POST /api/v1/assignments
func (h *Handlers) Assign(c *fiber.Ctx) error {
	actor, err := auth.ActorFromSession(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	var req AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	assetID, err := uuid.Parse(req.AssetID)
	if err != nil {
		return response.Error(c, "asset_id must be a valid id", fiber.StatusBadRequest, nil)
	}
	assigneeID, err := uuid.Parse(req.AssigneeID)
	if err != nil {
		return response.Error(c, "assignee_id must be a valid id", fiber.StatusBadRequest, nil)
	}

	result, err := h.Service.Assign(c.Context(), AssignInput{
		AssetID:            assetID,
		AssigneeID:         assigneeID,
		ExpectedReturnDate: importer.NormalizeDate(req.ExpectedReturnDate),
		Notes:              req.Notes,
	}, actor)
	if err != nil {
		return transitionError(c, err)
	}
	return response.SuccessCreated(c, "Asset assigned", transitionBody(result), nil)
}

// Return POST /api/v1/assignments/:id/return
func (h *Handlers) Return(c *fiber.Ctx) error {
	actor, err := auth.ActorFromSession(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "assignment id must be a valid id", fiber.StatusBadRequest, nil)
	}
	var req TransitionRequest
	_ = c.BodyParser(&req)

	result, err := h.Service.Return(c.Context(), id, importer.NormalizeDate(req.Date), req.Notes, actor)
	if err != nil {
		return transitionError(c, err)
	}
	return response.Success(c, "Asset returned", transitionBody(result), nil)
}

// MarkLost POST /api/v1/assignments/:id/lost
func (h *Handlers) MarkLost(c *fiber.Ctx) error {
	return h.terminal(c, "Asset marked lost", h.Service.MarkLost)
}

// MarkDamaged POST /api/v1/assignments/:id/damaged
func (h *Handlers) MarkDamaged(c *fiber.Ctx) error {
	return h.terminal(c, "Asset marked damaged", h.Service.MarkDamaged)
}

// ListForAsset GET /api/v1/assets/:id/assignments
func (h *Handlers) ListForAsset(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "asset id must be a valid id", fiber.StatusBadRequest, nil)
	}
	assignments, err := h.Service.ListForAsset(c.Context(), id)
	if err != nil {
		return transitionError(c, err)
	}
	return response.Success(c, "Assignments retrieved", assignments, fiber.Map{"count": len(assignments)})
}

func (h *Handlers) terminal(c *fiber.Ctx, message string, fn func(ctx context.Context, id uuid.UUID, note string, actor auth.Actor) (*Result, error)) error {
	actor, err := auth.ActorFromSession(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "assignment id must be a valid id", fiber.StatusBadRequest, nil)
	}
	var req TransitionRequest
	_ = c.BodyParser(&req)

	result, err := fn(c.Context(), id, req.Notes, actor)
	if err != nil {
		return transitionError(c, err)
	}
	return response.Success(c, message, transitionBody(result), nil)
}

func transitionBody(r *Result) fiber.Map {
	return fiber.Map{
		"ok":           true,
		"assignment":   r.Assignment,
		"sync_warning": r.SyncWarning,
	}
}

func transitionError(c *fiber.Ctx, err error) error {
	kind := faults.KindOf(err)
	details := fiber.Map{}
	if kind != "" {
		details["kind"] = string(kind)
	}
	return response.Error(c, err.Error(), faults.StatusCode(err), details)
}
