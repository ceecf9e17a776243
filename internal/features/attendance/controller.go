package attendance

import (
	"go-hr/internal/common/api"
	"go-hr/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

var allowedSort = []string{"emp_id", "leave_date", "leave_type", "duration_days"}

type AttendanceController struct {
	Service AttendanceService
}

func NewAttendanceController(service AttendanceService) *AttendanceController {
	return &AttendanceController{Service: service}
}

func parseFilter(c *fiber.Ctx, q models.ListQuery) Filter {
	return Filter{
		ListQuery: q,
		EmpID:     c.Query("emp_id"),
		EmpName:   c.Query("emp_name"),
		LeaveType: c.Query("leave_type"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
}

func paramsKey(c *fiber.Ctx) Key {
	return Key{
		EmpID:     c.Params("emp_id"),
		LeaveDate: c.Params("leave_date"),
		LeaveType: c.Params("leave_type"),
	}
}

func (ctrl *AttendanceController) ListRecords(c *fiber.Ctx) error {
	f := parseFilter(c, api.ParseListQuery(c, allowedSort))
	result, err := ctrl.Service.ListRecords(c.UserContext(), f)
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(result)
}

func (ctrl *AttendanceController) GetRecord(c *fiber.Ctx) error {
	rec, err := ctrl.Service.GetRecord(c.UserContext(), paramsKey(c))
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(rec)
}

func (ctrl *AttendanceController) CreateRecord(c *fiber.Ctx) error {
	var rec Record
	if err := c.BodyParser(&rec); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := ctrl.Service.CreateRecord(c.UserContext(), &rec); err != nil {
		return api.SendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

func (ctrl *AttendanceController) UpdateRecord(c *fiber.Ctx) error {
	var rec Record
	if err := c.BodyParser(&rec); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := ctrl.Service.UpdateRecord(c.UserContext(), paramsKey(c), &rec); err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(rec)
}

func (ctrl *AttendanceController) DeleteRecord(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteRecord(c.UserContext(), paramsKey(c)); err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(fiber.Map{"message": "leave record deleted"})
}

func (ctrl *AttendanceController) ExportRecords(c *fiber.Ctx) error {
	f := parseFilter(c, api.ExportQuery(c, allowedSort))
	data, filename, mime, err := ctrl.Service.Export(c.UserContext(), f, c.Query("format", "csv"))
	if err != nil {
		return api.SendError(c, err)
	}
	return api.SendExport(c, data, filename, mime)
}
