package importer

import (
	"fmt"

	"go-hr/internal/common/api"
	"go-hr/internal/common/models"
	"go-hr/internal/config"

	"github.com/gofiber/fiber/v2"
)

type ImporterController struct {
	Service ImporterService
	Config  *config.Config
}

func NewImporterController(service ImporterService, cfg *config.Config) *ImporterController {
	return &ImporterController{Service: service, Config: cfg}
}

func (ctrl *ImporterController) ImportFile(c *fiber.Ctx) error {
	mode, err := parseMode(c.FormValue("mode"))
	if err != nil {
		return api.SendError(c, err)
	}

	header, err := c.FormFile("file")
	if err != nil {
		return api.SendError(c, fmt.Errorf("file is required: %w", models.ErrInvalid))
	}
	file, err := header.Open()
	if err != nil {
		return api.SendError(c, fmt.Errorf("open upload: %w", models.ErrInvalid))
	}
	defer file.Close()

	summary, err := ctrl.Service.ImportFile(c.UserContext(), file, header.Filename, mode)
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(summary)
}

func (ctrl *ImporterController) ImportLegacy(c *fiber.Ctx) error {
	var req LegacyRequest
	if err := c.BodyParser(&req); err != nil {
		return api.SendError(c, fmt.Errorf("invalid request body: %w", models.ErrInvalid))
	}
	if req.DSN == "" {
		req.DSN = ctrl.Config.LegacyDSN
	}
	summary, err := ctrl.Service.ImportLegacy(c.UserContext(), &req)
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(summary)
}
