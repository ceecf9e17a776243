package auth

import (
	"fmt"

	"go-hr/internal/common/api"
	"go-hr/internal/common/models"
	"go-hr/internal/config"
	"go-hr/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Service AuthService
	Config  *config.Config
}

func NewAuthController(service AuthService, cfg *config.Config) *AuthController {
	return &AuthController{Service: service, Config: cfg}
}

func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return api.SendError(c, fmt.Errorf("invalid request body: %w", models.ErrInvalid))
	}
	session, err := ctrl.Service.Login(c.UserContext(), req.UserID, req.Password)
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(session)
}

func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	info, err := ctrl.Service.Me(c.UserContext(), claims.UserID, claims.Roles)
	if err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(info)
}

func (ctrl *AuthController) ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return api.SendError(c, fmt.Errorf("invalid request body: %w", models.ErrInvalid))
	}
	claims := middleware.Claims(c)
	if err := ctrl.Service.ChangePassword(c.UserContext(), claims.UserID, req.OldPassword, req.NewPassword); err != nil {
		return api.SendError(c, err)
	}
	return c.JSON(fiber.Map{"message": "password changed"})
}

// Logout ends the browser session. The bearer token itself stays valid
// until expiry; the server clears the CSRF cookie so the console starts
// the next session from a clean slate.
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	middleware.ClearCSRFCookie(c)
	return c.JSON(fiber.Map{"message": "logged out"})
}

// CSRFToken issues a fresh anti-forgery token. The value rides in both
// the response body and the cookie; clients echo it back in the
// X-CSRF-Token header on unsafe requests.
func (ctrl *AuthController) CSRFToken(c *fiber.Ctx) error {
	token := middleware.GenerateCSRFToken(ctrl.Config.CSRFSecret)
	middleware.SetCSRFCookie(c, token)
	return c.JSON(fiber.Map{"csrf_token": token})
}
