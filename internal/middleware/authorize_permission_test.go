package middleware

import (
	"net/http/httptest"
	"testing"

	"inventra-backend/internal/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func permissionApp(role, permission string) *fiber.App {
	app := fiber.New()
	if role != "" {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("user", map[string]interface{}{"role": role})
			return c.Next()
		})
	}
	app.Post("/guarded", AuthorizePermission(permission), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestAuthorizePermission(t *testing.T) {
	cases := []struct {
		name       string
		role       string
		permission string
		want       int
	}{
		{"viewer can view assets", constants.Viewer, constants.ViewAssets, fiber.StatusOK},
		{"viewer cannot import", constants.Viewer, constants.ImportAssets, fiber.StatusForbidden},
		{"technician cannot assign", constants.Technician, constants.AssignAsset, fiber.StatusForbidden},
		{"technician records maintenance", constants.Technician, constants.RecordMaintenance, fiber.StatusOK},
		{"manager imports", constants.Manager, constants.ImportAssets, fiber.StatusOK},
		{"manager transitions custody", constants.Manager, constants.TransitionCustody, fiber.StatusOK},
		{"admin manages assets", constants.Admin, constants.ManageAssets, fiber.StatusOK},
		{"no session is unauthorized", "", constants.ViewAssets, fiber.StatusUnauthorized},
		{"unknown permission is a config error", constants.Admin, "launch_rockets", fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := permissionApp(tc.role, tc.permission)
			resp, err := app.Test(httptest.NewRequest("POST", "/guarded", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/open", RequireAuth(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/open", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	withUser := fiber.New()
	withUser.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{"role": constants.Viewer})
		return c.Next()
	})
	withUser.Get("/open", RequireAuth(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err = withUser.Test(httptest.NewRequest("GET", "/open", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
