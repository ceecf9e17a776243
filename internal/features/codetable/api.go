package codetable

import (
	"go-hr/internal/config"
	"go-hr/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CodeApi struct {
	controller *CodeController
	config     *config.Config
}

func NewCodeApi(controller *CodeController, cfg *config.Config) *CodeApi {
	return &CodeApi{
		controller: controller,
		config:     cfg,
	}
}

// Setup registers code table routes
func (h *CodeApi) Setup(app *fiber.App) {
	codes := app.Group("/api/codes", middleware.AuthMiddleware(h.config.SkipAuth))

	codes.Get("/", h.controller.ListCodes)
	codes.Post("/", h.controller.CreateCode)
	codes.Get("/export", h.controller.ExportCodes)
	codes.Get("/leave-types", h.controller.ListLeaveTypes)
	codes.Get("/:code_code/:code_subcode", h.controller.GetCode)
	codes.Put("/:code_code/:code_subcode", h.controller.UpdateCode)
	codes.Delete("/:code_code/:code_subcode", h.controller.DeleteCode)
}
