package auth

import (
	"go-hr/internal/config"
	"go-hr/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuthApi struct {
	controller *AuthController
	config     *config.Config
}

func NewAuthApi(controller *AuthController, cfg *config.Config) *AuthApi {
	return &AuthApi{
		controller: controller,
		config:     cfg,
	}
}

// Setup registers the auth routes. Login and the token endpoint are the
// only unauthenticated API surface.
func (h *AuthApi) Setup(app *fiber.App) {
	app.Get("/api/csrf-token", h.controller.CSRFToken)

	authGroup := app.Group("/api/auth")
	authGroup.Post("/login", h.controller.Login)
	authGroup.Post("/logout", h.controller.Logout)
	authGroup.Get("/me", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.Me)
	authGroup.Post("/change-password", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.ChangePassword)
}
