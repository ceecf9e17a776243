package sysuser

import (
	"go-hr/internal/config"
	"go-hr/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserApi struct {
	controller *UserController
	config     *config.Config
}

func NewUserApi(controller *UserController, cfg *config.Config) *UserApi {
	return &UserApi{
		controller: controller,
		config:     cfg,
	}
}

// Setup registers system user routes, all admin only.
func (h *UserApi) Setup(app *fiber.App) {
	users := app.Group("/api/system/users",
		middleware.AuthMiddleware(h.config.SkipAuth),
		middleware.RequireRole("admin"))

	app.Get("/api/system/available-members",
		middleware.AuthMiddleware(h.config.SkipAuth),
		middleware.RequireRole("admin"),
		h.controller.AvailableMembers)

	users.Get("/", h.controller.ListUsers)
	users.Get("/export", h.controller.ExportUsers)
	users.Post("/", h.controller.CreateUser)
	users.Get("/:user_id", h.controller.GetUser)
	users.Put("/:user_id", h.controller.UpdateUser)
	users.Delete("/:user_id", h.controller.DeleteUser)
}
