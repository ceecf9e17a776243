package menu

import (
	"go-hr/internal/config"
	"go-hr/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type MenuApi struct {
	controller *MenuController
	config     *config.Config
}

func NewMenuApi(controller *MenuController, cfg *config.Config) *MenuApi {
	return &MenuApi{
		controller: controller,
		config:     cfg,
	}
}

// Setup registers menu routes. The tree itself is visible to any signed-in
// user; everything that changes menus is admin only.
func (h *MenuApi) Setup(app *fiber.App) {
	menus := app.Group("/api/system/menus", middleware.AuthMiddleware(h.config.SkipAuth))

	menus.Get("/", h.controller.GetTree)
	menus.Get("/flat", middleware.RequireRole("admin"), h.controller.GetFlat)
	menus.Get("/all", middleware.RequireRole("admin"), h.controller.GetAll)
	menus.Post("/", middleware.RequireRole("admin"), h.controller.CreateMenu)
	menus.Put("/:menu_id", middleware.RequireRole("admin"), h.controller.UpdateMenu)
	menus.Delete("/:menu_id", middleware.RequireRole("admin"), h.controller.DeleteMenu)
}
