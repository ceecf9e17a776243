package importer

import (
	"go-hr/internal/config"
	"go-hr/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ImporterApi struct {
	controller *ImporterController
	config     *config.Config
}

func NewImporterApi(controller *ImporterController, cfg *config.Config) *ImporterApi {
	return &ImporterApi{
		controller: controller,
		config:     cfg,
	}
}

// Setup registers the bulk import routes. Both rewrite the member
// collection, so they are admin only.
func (h *ImporterApi) Setup(app *fiber.App) {
	imports := app.Group("/api/members/import",
		middleware.AuthMiddleware(h.config.SkipAuth),
		middleware.RequireRole("admin"))

	imports.Post("/", h.controller.ImportFile)
	imports.Post("/legacy", h.controller.ImportLegacy)
}
