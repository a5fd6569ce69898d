package health

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// DBPinger is optional; if nil the database is reported as disconnected.
type DBPinger interface {
	Ping() error
}

// Handlers holds dependencies for health endpoints.
type Handlers struct {
	Rdb *redis.Client
	DB  DBPinger
}

// DepStatus is the reported state of one dependency.
type DepStatus struct {
	Status string      `json:"status"`
	PingMs interface{} `json:"pingMs"`
}

// Root GET / — liveness.
func (h *Handlers) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "service": "inventra-backend"})
}

// JSON GET /health/json — dependency pings.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	deps := map[string]DepStatus{
		"database": h.pingDB(),
		"redis":    h.pingRedis(),
	}
	status := "ok"
	for _, d := range deps {
		if d.Status != "connected" {
			status = "degraded"
		}
	}
	return c.JSON(fiber.Map{"status": status, "dependencies": deps})
}

func (h *Handlers) pingDB() DepStatus {
	if h.DB == nil {
		return DepStatus{Status: "disconnected"}
	}
	start := time.Now()
	if err := h.DB.Ping(); err != nil {
		return DepStatus{Status: "error"}
	}
	return DepStatus{Status: "connected", PingMs: time.Since(start).Milliseconds()}
}

func (h *Handlers) pingRedis() DepStatus {
	if h.Rdb == nil {
		return DepStatus{Status: "disconnected"}
	}
	start := time.Now()
	if err := h.Rdb.Ping(context.Background()).Err(); err != nil {
		return DepStatus{Status: "error"}
	}
	return DepStatus{Status: "connected", PingMs: time.Since(start).Milliseconds()}
}
