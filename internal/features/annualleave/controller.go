package annualleave

import (
	"go-hr/internal/common/api"
	"go-hr/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

var allowedSort = []string{"emp_id", "year", "leave_type", "granted_days", "used_days"}

type BalanceController struct {
	Service BalanceService
}

func NewBalanceController(service BalanceService) *BalanceController {
	return &BalanceController{Service: service}
}

func parseFilter(c *fiber.Ctx, q models.ListQuery) Filter {
	return Filter{
		ListQuery: q,
		EmpID:     c.Query("emp_id"),
		Year:      c.Query("year"),
		LeaveType: c.Query("leave_type"),
	}
}

func paramsKey(c *fiber.Ctx) Key {
	return Key{
		EmpID:     c.Params("emp_id"),
		Year:      c.Params("year"),
		LeaveType: c.Params("leave_type"),
	}
}

func (ctrl *BalanceController) ListBalances(c *fiber.Ctx) error {
	f := parseFilter(c, api.ParseListQuery(c, allowedSort))
	result, err := ctrl.Service.ListBalances(c.UserContext(), f)
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(result)
}

func (ctrl *BalanceController) GetBalance(c *fiber.Ctx) error {
	b, err := ctrl.Service.GetBalance(c.UserContext(), paramsKey(c))
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(b)
}

func (ctrl *BalanceController) CreateBalance(c *fiber.Ctx) error {
	var b Balance
	if err := c.BodyParser(&b); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := ctrl.Service.CreateBalance(c.UserContext(), &b); err != nil {
		return api.SendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view(b))
}

func (ctrl *BalanceController) UpdateBalance(c *fiber.Ctx) error {
	var b Balance
	if err := c.BodyParser(&b); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := ctrl.Service.UpdateBalance(c.UserContext(), paramsKey(c), &b); err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(view(b))
}

func (ctrl *BalanceController) DeleteBalance(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteBalance(c.UserContext(), paramsKey(c)); err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(fiber.Map{"message": "balance deleted"})
}

// TriggerRollover runs the yearly grant on demand, mainly for operators
// backfilling a missed January run.
func (ctrl *BalanceController) TriggerRollover(c *fiber.Ctx) error {
	created, err := ctrl.Service.Rollover(c.UserContext(), c.Query("year"))
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(fiber.Map{"message": "rollover finished", "created": created})
}

func (ctrl *BalanceController) ExportBalances(c *fiber.Ctx) error {
	f := parseFilter(c, api.ExportQuery(c, allowedSort))
	data, filename, mime, err := ctrl.Service.Export(c.UserContext(), f, c.Query("format", "csv"))
	if err != nil {
		return api.SendError(c, err)
	}
	return api.SendExport(c, data, filename, mime)
}
