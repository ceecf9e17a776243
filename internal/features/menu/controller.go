package menu

import (
	"go-hr/internal/common/api"
	"go-hr/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type MenuController struct {
	Service MenuService
}

func NewMenuController(service MenuService) *MenuController {
	return &MenuController{Service: service}
}

func (ctrl *MenuController) GetTree(c *fiber.Ctx) error {
	var roles []string
	if claims := middleware.Claims(c); claims != nil {
		roles = claims.Roles
	}
	views, err := ctrl.Service.Tree(c.UserContext(), roles)
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(fiber.Map{"items": views})
}

func (ctrl *MenuController) GetFlat(c *fiber.Ctx) error {
	menus, err := ctrl.Service.Flat(c.UserContext())
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(fiber.Map{"items": menus})
}

func (ctrl *MenuController) GetAll(c *fiber.Ctx) error {
	menus, err := ctrl.Service.All(c.UserContext())
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(fiber.Map{"items": menus})
}

func (ctrl *MenuController) CreateMenu(c *fiber.Ctx) error {
	var m Menu
	if err := c.BodyParser(&m); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := ctrl.Service.CreateMenu(c.UserContext(), &m); err != nil {
		return api.SendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "menu created", "menu_id": m.ID})
}

func (ctrl *MenuController) UpdateMenu(c *fiber.Ctx) error {
	var upd UpdateMenu
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := ctrl.Service.UpdateMenu(c.UserContext(), c.Params("menu_id"), upd); err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(fiber.Map{"message": "menu updated"})
}

func (ctrl *MenuController) DeleteMenu(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteMenu(c.UserContext(), c.Params("menu_id")); err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(fiber.Map{"message": "menu deleted"})
}
