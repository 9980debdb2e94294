package controllers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"newsline/app/services"
	"newsline/internal/pkg/middleware"
)

// AuthController handles HTTP requests for registration, activation and
// the password flows.
type AuthController struct {
	auth     *services.AuthService
	validate *validator.Validate
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{
		auth:     auth,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthController) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	auth := router.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Get("/activate/:token", h.Activate)
	auth.Post("/login", h.Login)
	auth.Post("/forgot-password", h.ForgotPassword)
	auth.Patch("/change-password", authRequired, h.ChangePassword)
}

func (h *AuthController) Register(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(in); err != nil {
		return respondValidationError(c, err)
	}

	result, err := h.auth.Register(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *AuthController) Activate(c *fiber.Ctx) error {
	result, err := h.auth.Activate(c.Params("token"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *AuthController) Login(c *fiber.Ctx) error {
	var in services.LoginInput
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(in); err != nil {
		return respondValidationError(c, err)
	}

	result, err := h.auth.Login(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *AuthController) ForgotPassword(c *fiber.Ctx) error {
	var in services.ForgotPasswordInput
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(in); err != nil {
		return respondValidationError(c, err)
	}

	result, err := h.auth.ForgotPassword(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *AuthController) ChangePassword(c *fiber.Ctx) error {
	var in services.ChangePasswordInput
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(in); err != nil {
		return respondValidationError(c, err)
	}

	result, err := h.auth.ChangePassword(middleware.CurrentUser(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
