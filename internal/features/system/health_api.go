package system

import (
	"time"

	"go-hr/internal/database"

	"github.com/gofiber/fiber/v2"
)

type HealthApi struct {
	db *database.MongodbDB
}

func NewHealthApi(db *database.MongodbDB) *HealthApi {
	return &HealthApi{db: db}
}

// Setup registers the health probes. Both are unauthenticated so load
// balancers can reach them.
func (h *HealthApi) Setup(app *fiber.App) {
	app.Get("/health", h.liveness)
	app.Get("/health/db", h.readiness)
}

func (h *HealthApi) liveness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
}

func (h *HealthApi) readiness(c *fiber.Ctx) error {
	if err := h.db.DB.Client().Ping(c.UserContext(), nil); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
