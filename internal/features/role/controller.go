package role

import (
	"strconv"

	"go-hr/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

var allowedSort = []string{"role_id", "role_name", "created_at"}

type RoleController struct {
	Service RoleService
}

func NewRoleController(service RoleService) *RoleController {
	return &RoleController{Service: service}
}

func (ctrl *RoleController) ListRoles(c *fiber.Ctx) error {
	f := Filter{ListQuery: api.ParseListQuery(c, allowedSort)}
	if raw := c.Query("is_active"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			f.IsActive = &v
		}
	}
	result, err := ctrl.Service.ListRoles(c.UserContext(), f)
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(result)
}

func (ctrl *RoleController) ExportRoles(c *fiber.Ctx) error {
	f := Filter{ListQuery: api.ExportQuery(c, allowedSort)}
	if raw := c.Query("is_active"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			f.IsActive = &v
		}
	}
	data, filename, mime, err := ctrl.Service.Export(c.UserContext(), f, c.Query("format", "csv"))
	if err != nil {
		return api.SendError(c, err)
	}
	return api.SendExport(c, data, filename, mime)
}

func (ctrl *RoleController) GetRole(c *fiber.Ctx) error {
	role, err := ctrl.Service.GetRole(c.UserContext(), c.Params("role_id"))
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(role)
}

func (ctrl *RoleController) CreateRole(c *fiber.Ctx) error {
	var role Role
	if err := c.BodyParser(&role); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := ctrl.Service.CreateRole(c.UserContext(), &role); err != nil {
		return api.SendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(role)
}

func (ctrl *RoleController) UpdateRole(c *fiber.Ctx) error {
	var role Role
	if err := c.BodyParser(&role); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := ctrl.Service.UpdateRole(c.UserContext(), c.Params("role_id"), &role); err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(role)
}

func (ctrl *RoleController) DeleteRole(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteRole(c.UserContext(), c.Params("role_id")); err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(fiber.Map{"message": "role deleted"})
}
