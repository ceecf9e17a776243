package member

import (
	"go-hr/internal/config"
	"go-hr/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type MemberApi struct {
	controller *MemberController
	config     *config.Config
}

func NewMemberApi(controller *MemberController, cfg *config.Config) *MemberApi {
	return &MemberApi{
		controller: controller,
		config:     cfg,
	}
}

// Setup registers member routes
func (h *MemberApi) Setup(app *fiber.App) {
	members := app.Group("/api/members", middleware.AuthMiddleware(h.config.SkipAuth))

	members.Get("/", h.controller.ListMembers)
	members.Post("/", h.controller.CreateMember)
	members.Get("/export", h.controller.ExportMembers)
	members.Get("/:emp_id", h.controller.GetMember)
	members.Put("/:emp_id", h.controller.UpdateMember)
	members.Delete("/:emp_id", h.controller.DeleteMember)

	app.Get("/api/divisions", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.ListDivisions)
}
