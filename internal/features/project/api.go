package project

import (
	"go-hr/internal/config"
	"go-hr/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ProjectApi struct {
	controller *ProjectController
	config     *config.Config
}

func NewProjectApi(controller *ProjectController, cfg *config.Config) *ProjectApi {
	return &ProjectApi{
		controller: controller,
		config:     cfg,
	}
}

// Setup registers project routes
func (h *ProjectApi) Setup(app *fiber.App) {
	projects := app.Group("/api/projects", middleware.AuthMiddleware(h.config.SkipAuth))

	projects.Get("/", h.controller.ListProjects)
	projects.Post("/", h.controller.CreateProject)
	projects.Get("/export", h.controller.ExportProjects)
	projects.Get("/:project_no", h.controller.GetProject)
	projects.Put("/:project_no", h.controller.UpdateProject)
	projects.Delete("/:project_no", h.controller.DeleteProject)
}
