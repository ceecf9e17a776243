package attendance

import (
	"go-hr/internal/config"
	"go-hr/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AttendanceApi struct {
	controller *AttendanceController
	config     *config.Config
}

func NewAttendanceApi(controller *AttendanceController, cfg *config.Config) *AttendanceApi {
	return &AttendanceApi{
		controller: controller,
		config:     cfg,
	}
}

// Setup registers attendance routes
func (h *AttendanceApi) Setup(app *fiber.App) {
	records := app.Group("/api/attendance", middleware.AuthMiddleware(h.config.SkipAuth))

	records.Get("/", h.controller.ListRecords)
	records.Post("/", h.controller.CreateRecord)
	records.Get("/export", h.controller.ExportRecords)
	records.Get("/:emp_id/:leave_date/:leave_type", h.controller.GetRecord)
	records.Put("/:emp_id/:leave_date/:leave_type", h.controller.UpdateRecord)
	records.Delete("/:emp_id/:leave_date/:leave_type", h.controller.DeleteRecord)
}
