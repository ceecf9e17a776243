package role

import (
	"go-hr/internal/config"
	"go-hr/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type RoleApi struct {
	controller *RoleController
	config     *config.Config
}

func NewRoleApi(controller *RoleController, cfg *config.Config) *RoleApi {
	return &RoleApi{
		controller: controller,
		config:     cfg,
	}
}

// Setup registers role routes. Reading roles only needs a login; writes
// are admin only.
func (h *RoleApi) Setup(app *fiber.App) {
	roles := app.Group("/api/system/roles", middleware.AuthMiddleware(h.config.SkipAuth))

	roles.Get("/", h.controller.ListRoles)
	roles.Get("/export", middleware.RequireRole("admin"), h.controller.ExportRoles)
	roles.Get("/:role_id", h.controller.GetRole)
	roles.Post("/", middleware.RequireRole("admin"), h.controller.CreateRole)
	roles.Put("/:role_id", middleware.RequireRole("admin"), h.controller.UpdateRole)
	roles.Delete("/:role_id", middleware.RequireRole("admin"), h.controller.DeleteRole)
}
