package project

import (
	"go-hr/internal/common/api"
	"go-hr/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

var allowedSort = []string{"project_no", "name", "owner_emp_id", "status", "start_date"}

type ProjectController struct {
	Service ProjectService
}

func NewProjectController(service ProjectService) *ProjectController {
	return &ProjectController{Service: service}
}

func parseFilter(c *fiber.Ctx, q models.ListQuery) Filter {
	return Filter{
		ListQuery: q,
		Owner:     c.Query("owner"),
		Status:    c.Query("status"),
	}
}

func (ctrl *ProjectController) ListProjects(c *fiber.Ctx) error {
	f := parseFilter(c, api.ParseListQuery(c, allowedSort))
	result, err := ctrl.Service.ListProjects(c.UserContext(), f)
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(result)
}

func (ctrl *ProjectController) GetProject(c *fiber.Ctx) error {
	p, err := ctrl.Service.GetProject(c.UserContext(), c.Params("project_no"))
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(p)
}

func (ctrl *ProjectController) CreateProject(c *fiber.Ctx) error {
	var p Project
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := ctrl.Service.CreateProject(c.UserContext(), &p); err != nil {
		return api.SendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (ctrl *ProjectController) UpdateProject(c *fiber.Ctx) error {
	var p Project
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := ctrl.Service.UpdateProject(c.UserContext(), c.Params("project_no"), &p); err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(p)
}

func (ctrl *ProjectController) DeleteProject(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteProject(c.UserContext(), c.Params("project_no")); err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(fiber.Map{"message": "project deleted"})
}

func (ctrl *ProjectController) ExportProjects(c *fiber.Ctx) error {
	f := parseFilter(c, api.ExportQuery(c, allowedSort))
	data, filename, mime, err := ctrl.Service.Export(c.UserContext(), f, c.Query("format", "csv"))
	if err != nil {
		return api.SendError(c, err)
	}
	return api.SendExport(c, data, filename, mime)
}
