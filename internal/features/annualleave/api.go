package annualleave

import (
	"go-hr/internal/config"
	"go-hr/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type BalanceApi struct {
	controller *BalanceController
	config     *config.Config
}

func NewBalanceApi(controller *BalanceController, cfg *config.Config) *BalanceApi {
	return &BalanceApi{
		controller: controller,
		config:     cfg,
	}
}

// Setup registers annual leave routes
func (h *BalanceApi) Setup(app *fiber.App) {
	balances := app.Group("/api/annual-leave", middleware.AuthMiddleware(h.config.SkipAuth))

	balances.Get("/", h.controller.ListBalances)
	balances.Post("/", h.controller.CreateBalance)
	balances.Get("/export", h.controller.ExportBalances)
	balances.Post("/rollover", middleware.RequireRole("admin"), h.controller.TriggerRollover)
	balances.Get("/:emp_id/:year/:leave_type", h.controller.GetBalance)
	balances.Put("/:emp_id/:year/:leave_type", h.controller.UpdateBalance)
	balances.Delete("/:emp_id/:year/:leave_type", h.controller.DeleteBalance)
}
