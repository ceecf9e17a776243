package announcement

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go-hr/internal/common/api"
	"go-hr/internal/common/models"
	"go-hr/internal/config"
	"go-hr/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var allowedSort = []string{"created_at", "publish_date", "title"}

type AnnouncementController struct {
	Service   AnnouncementService
	UploadDir string
}

func NewAnnouncementController(service AnnouncementService, cfg *config.Config) *AnnouncementController {
	dir := filepath.Join(cfg.UploadDir, "announcements")
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		os.MkdirAll(dir, 0755)
	}
	return &AnnouncementController{Service: service, UploadDir: dir}
}

func currentUserID(c *fiber.Ctx) string {
	if claims := middleware.Claims(c); claims != nil {
		return claims.UserID
	}
	return ""
}

func (ctrl *AnnouncementController) ListAnnouncements(c *fiber.Ctx) error {
	f := Filter{
		ListQuery:  api.ParseListQuery(c, allowedSort),
		CategoryID: c.Query("category_id"),
	}
	if raw := c.Query("is_active"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			f.IsActive = &v
		}
	}
	result, err := ctrl.Service.ListAnnouncements(c.UserContext(), f)
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(result)
}

func (ctrl *AnnouncementController) ExportAnnouncements(c *fiber.Ctx) error {
	f := Filter{
		ListQuery:  api.ExportQuery(c, allowedSort),
		CategoryID: c.Query("category_id"),
	}
	if raw := c.Query("is_active"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			f.IsActive = &v
		}
	}
	data, filename, mime, err := ctrl.Service.Export(c.UserContext(), f, c.Query("format", "csv"))
	if err != nil {
		return api.SendError(c, err)
	}
	return api.SendExport(c, data, filename, mime)
}

func (ctrl *AnnouncementController) GetActive(c *fiber.Ctx) error {
	items, err := ctrl.Service.ActiveFor(c.UserContext(), currentUserID(c))
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(fiber.Map{"items": items, "total": len(items)})
}

func (ctrl *AnnouncementController) GetCategories(c *fiber.Ctx) error {
	codes, err := ctrl.Service.Categories(c.UserContext())
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(fiber.Map{"items": codes})
}

func (ctrl *AnnouncementController) GetAnnouncement(c *fiber.Ctx) error {
	a, err := ctrl.Service.GetAnnouncement(c.UserContext(), c.Params("id"))
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(a)
}

func (ctrl *AnnouncementController) CreateAnnouncement(c *fiber.Ctx) error {
	var a Announcement
	if err := c.BodyParser(&a); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := ctrl.Service.CreateAnnouncement(c.UserContext(), &a, currentUserID(c)); err != nil {
		return api.SendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

func (ctrl *AnnouncementController) UpdateAnnouncement(c *fiber.Ctx) error {
	var a Announcement
	if err := c.BodyParser(&a); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := ctrl.Service.UpdateAnnouncement(c.UserContext(), c.Params("id"), &a); err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(a)
}

func (ctrl *AnnouncementController) DeleteAnnouncement(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteAnnouncement(c.UserContext(), c.Params("id")); err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(fiber.Map{"message": "announcement deleted"})
}

func (ctrl *AnnouncementController) UploadAttachment(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}
	if file.Size > maxAttachmentSize {
		return api.SendError(c, fmt.Errorf("file exceeds %d bytes: %w", int64(maxAttachmentSize), models.ErrInvalid))
	}

	original := filepath.Base(file.Filename)
	uniqueName := fmt.Sprintf("%s_%s%s",
		c.Params("id"), primitive.NewObjectID().Hex(), filepath.Ext(original))
	dstPath := filepath.Join(ctrl.UploadDir, uniqueName)

	if err := c.SaveFile(file, dstPath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error saving file"})
	}

	att := &Attachment{
		AnnouncementID: c.Params("id"),
		FileName:       original,
		Path:           dstPath,
		FileSize:       file.Size,
		FileType:       file.Header.Get("Content-Type"),
	}
	if err := ctrl.Service.AddAttachment(c.UserContext(), att); err != nil {
		os.Remove(dstPath)
		return api.SendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(att)
}

func (ctrl *AnnouncementController) DownloadAttachment(c *fiber.Ctx) error {
	att, err := ctrl.Service.GetAttachment(c.UserContext(), c.Params("attachment_id"))
	if err != nil {
		return api.SendError(c, err)
	}
	return c.Download(att.Path, att.FileName)
}

func (ctrl *AnnouncementController) DeleteAttachment(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteAttachment(c.UserContext(), c.Params("attachment_id")); err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(fiber.Map{"message": "attachment deleted"})
}

func (ctrl *AnnouncementController) MarkRead(c *fiber.Ctx) error {
	if err := ctrl.Service.MarkRead(c.UserContext(), c.Params("id"), currentUserID(c)); err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(fiber.Map{"message": "marked as read"})
}
