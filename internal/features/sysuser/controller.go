package sysuser

import (
	"go-hr/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

var allowedSort = []string{"user_id", "created_at", "last_login_at"}

type UserController struct {
	Service UserService
}

func NewUserController(service UserService) *UserController {
	return &UserController{Service: service}
}

func (ctrl *UserController) ListUsers(c *fiber.Ctx) error {
	f := Filter{ListQuery: api.ParseListQuery(c, allowedSort)}
	result, err := ctrl.Service.ListUsers(c.UserContext(), f)
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(result)
}

func (ctrl *UserController) AvailableMembers(c *fiber.Ctx) error {
	items, err := ctrl.Service.AvailableMembers(c.UserContext(), c.Query("search"))
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(fiber.Map{"items": items})
}

func (ctrl *UserController) ExportUsers(c *fiber.Ctx) error {
	f := Filter{ListQuery: api.ExportQuery(c, allowedSort)}
	data, filename, mime, err := ctrl.Service.Export(c.UserContext(), f, c.Query("format", "csv"))
	if err != nil {
		return api.SendError(c, err)
	}
	return api.SendExport(c, data, filename, mime)
}

func (ctrl *UserController) GetUser(c *fiber.Ctx) error {
	u, err := ctrl.Service.GetUser(c.UserContext(), c.Params("user_id"))
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(u)
}

func (ctrl *UserController) CreateUser(c *fiber.Ctx) error {
	var req CreateUser
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	u, err := ctrl.Service.CreateUser(c.UserContext(), req)
	if err != nil {
		return api.SendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(u)
}

func (ctrl *UserController) UpdateUser(c *fiber.Ctx) error {
	var upd UpdateUser
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := ctrl.Service.UpdateUser(c.UserContext(), c.Params("user_id"), upd); err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(fiber.Map{"message": "user updated"})
}

func (ctrl *UserController) DeleteUser(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteUser(c.UserContext(), c.Params("user_id")); err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(fiber.Map{"message": "user deleted"})
}
