package member

import (
	"strconv"

	"go-hr/internal/common/api"
	"go-hr/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

// allowedSort lists the columns list and export requests may sort on.
var allowedSort = []string{"emp_id", "chinese_name", "name", "division_name", "job_title", "email"}

type MemberController struct {
	Service MemberService
}

func NewMemberController(service MemberService) *MemberController {
	return &MemberController{Service: service}
}

func parseFilter(c *fiber.Ctx, q models.ListQuery) Filter {
	f := Filter{
		ListQuery: q,
		Division:  c.Query("division"),
	}
	for _, raw := range c.Context().QueryArgs().PeekMulti("member_type") {
		f.MemberTypes = append(f.MemberTypes, string(raw))
	}
	if raw := c.Query("is_employed"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			f.IsEmployed = &v
		}
	}
	return f
}

func (ctrl *MemberController) ListMembers(c *fiber.Ctx) error {
	f := parseFilter(c, api.ParseListQuery(c, allowedSort))
	result, err := ctrl.Service.ListMembers(c.UserContext(), f)
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(result)
}

func (ctrl *MemberController) GetMember(c *fiber.Ctx) error {
	m, err := ctrl.Service.GetMember(c.UserContext(), c.Params("emp_id"))
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(m)
}

func (ctrl *MemberController) CreateMember(c *fiber.Ctx) error {
	var m Member
	if err := c.BodyParser(&m); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := ctrl.Service.CreateMember(c.UserContext(), &m); err != nil {
		return api.SendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

func (ctrl *MemberController) UpdateMember(c *fiber.Ctx) error {
	var m Member
	if err := c.BodyParser(&m); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := ctrl.Service.UpdateMember(c.UserContext(), c.Params("emp_id"), &m); err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(m)
}

func (ctrl *MemberController) DeleteMember(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteMember(c.UserContext(), c.Params("emp_id")); err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(fiber.Map{"message": "member deleted"})
}

func (ctrl *MemberController) ListDivisions(c *fiber.Ctx) error {
	divisions, err := ctrl.Service.Divisions(c.UserContext())
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(divisions)
}

func (ctrl *MemberController) ExportMembers(c *fiber.Ctx) error {
	f := parseFilter(c, api.ExportQuery(c, allowedSort))
	data, filename, mime, err := ctrl.Service.Export(c.UserContext(), f, c.Query("format", "csv"))
	if err != nil {
		return api.SendError(c, err)
	}
	return api.SendExport(c, data, filename, mime)
}
