package announcement

import (
	"go-hr/internal/config"
	"go-hr/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AnnouncementApi struct {
	controller *AnnouncementController
	config     *config.Config
}

func NewAnnouncementApi(controller *AnnouncementController, cfg *config.Config) *AnnouncementApi {
	return &AnnouncementApi{
		controller: controller,
		config:     cfg,
	}
}

// Setup registers announcement routes. Everyone signed in reads; the
// admin list and mutations are admin only.
func (h *AnnouncementApi) Setup(app *fiber.App) {
	anns := app.Group("/api/announcements", middleware.AuthMiddleware(h.config.SkipAuth))

	anns.Get("/", middleware.RequireRole("admin"), h.controller.ListAnnouncements)
	anns.Post("/", middleware.RequireRole("admin"), h.controller.CreateAnnouncement)
	anns.Get("/export", middleware.RequireRole("admin"), h.controller.ExportAnnouncements)
	anns.Get("/active", h.controller.GetActive)
	anns.Get("/categories", h.controller.GetCategories)
	anns.Get("/attachments/:attachment_id/download", h.controller.DownloadAttachment)
	anns.Delete("/attachments/:attachment_id", middleware.RequireRole("admin"), h.controller.DeleteAttachment)
	anns.Get("/:id", h.controller.GetAnnouncement)
	anns.Put("/:id", middleware.RequireRole("admin"), h.controller.UpdateAnnouncement)
	anns.Delete("/:id", middleware.RequireRole("admin"), h.controller.DeleteAnnouncement)
	anns.Post("/:id/read", h.controller.MarkRead)
	anns.Post("/:id/attachments", middleware.RequireRole("admin"), h.controller.UploadAttachment)
}
