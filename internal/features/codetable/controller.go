package codetable

import (
	"go-hr/internal/common/api"
	"go-hr/internal/common/models"
	"go-hr/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

var allowedSort = []string{"code_code", "code_subcode", "code_subname", "upddate", "used_mark"}

type CodeController struct {
	Service CodeService
}

func NewCodeController(service CodeService) *CodeController {
	return &CodeController{Service: service}
}

func parseFilter(c *fiber.Ctx, q models.ListQuery) Filter {
	return Filter{
		ListQuery: q,
		CodeCode:  c.Query("code_code"),
		UsedMark:  c.Query("used_mark"),
	}
}

func paramsKey(c *fiber.Ctx) Key {
	return Key{
		CodeCode:    c.Params("code_code"),
		CodeSubcode: c.Params("code_subcode"),
	}
}

func currentUserID(c *fiber.Ctx) string {
	if claims := middleware.Claims(c); claims != nil {
		return claims.Username
	}
	return ""
}

func (ctrl *CodeController) ListCodes(c *fiber.Ctx) error {
	f := parseFilter(c, api.ParseListQuery(c, allowedSort))
	result, err := ctrl.Service.ListCodes(c.UserContext(), f)
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(result)
}

func (ctrl *CodeController) GetCode(c *fiber.Ctx) error {
	code, err := ctrl.Service.GetCode(c.UserContext(), paramsKey(c))
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(code)
}

func (ctrl *CodeController) CreateCode(c *fiber.Ctx) error {
	var code Code
	if err := c.BodyParser(&code); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := ctrl.Service.CreateCode(c.UserContext(), &code, currentUserID(c)); err != nil {
		return api.SendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(code)
}

func (ctrl *CodeController) UpdateCode(c *fiber.Ctx) error {
	var code Code
	if err := c.BodyParser(&code); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := ctrl.Service.UpdateCode(c.UserContext(), paramsKey(c), &code, currentUserID(c)); err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(code)
}

func (ctrl *CodeController) DeleteCode(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteCode(c.UserContext(), paramsKey(c)); err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(fiber.Map{"message": "code deleted"})
}

func (ctrl *CodeController) ListLeaveTypes(c *fiber.Ctx) error {
	codes, err := ctrl.Service.LeaveTypes(c.UserContext())
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(codes)
}

func (ctrl *CodeController) ExportCodes(c *fiber.Ctx) error {
	f := parseFilter(c, api.ExportQuery(c, allowedSort))
	data, filename, mime, err := ctrl.Service.Export(c.UserContext(), f, c.Query("format", "csv"))
	if err != nil {
		return api.SendError(c, err)
	}
	return api.SendExport(c, data, filename, mime)
}
