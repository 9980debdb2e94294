package controllers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"newsline/app/services"
	"newsline/internal/pkg/middleware"
)

// CommentController handles the comment routes.
type CommentController struct {
	comments *services.CommentService
	validate *validator.Validate
}

func NewCommentController(comments *services.CommentService) *CommentController {
	return &CommentController{
		comments: comments,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the comment routes.
func (h *CommentController) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	comments := router.Group("/comments")
	comments.Post("/", authRequired, h.Create)
	comments.Get("/", h.FindAll)
	comments.Get("/:id", authRequired, h.FindOne)
	comments.Put("/:id", authRequired, h.Update)
	comments.Delete("/:id", authRequired, h.Delete)
}

func (h *CommentController) Create(c *fiber.Ctx) error {
	var in services.CreateCommentInput
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(in); err != nil {
		return respondValidationError(c, err)
	}

	result, err := h.comments.Create(in, middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *CommentController) FindAll(c *fiber.Ctx) error {
	result, err := h.comments.FindAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *CommentController) FindOne(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.comments.FindOne(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *CommentController) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var in services.UpdateCommentInput
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(in); err != nil {
		return respondValidationError(c, err)
	}

	result, err := h.comments.Update(id, in, middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *CommentController) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.comments.Delete(id, middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
