package controllers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"newsline/app/services"
	"newsline/internal/pkg/middleware"
)

// UserController handles the user directory, profile and follow routes.
type UserController struct {
	users    *services.UserService
	validate *validator.Validate
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{
		users:    users,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the user routes. Static segments go first so
// they are not captured by the :id parameter.
func (h *UserController) RegisterRoutes(router fiber.Router, authRequired, adminRequired fiber.Handler) {
	users := router.Group("/users")
	users.Get("/", h.FindAll)
	users.Get("/search", h.Search)
	users.Get("/my-profile", authRequired, h.Profile)
	users.Put("/my-profile", authRequired, h.UpdateProfile)
	users.Get("/:id", h.FindOne)
	users.Post("/:id/follow", authRequired, h.Follow)
	users.Delete("/:id/follow", authRequired, h.Unfollow)
	users.Delete("/:id", authRequired, adminRequired, h.Delete)
}

func (h *UserController) FindAll(c *fiber.Ctx) error {
	result, err := h.users.FindAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *UserController) Search(c *fiber.Ctx) error {
	in := services.SearchUsersInput{
		Username: c.Query("username"),
		Email:    c.Query("email"),
	}
	result, err := h.users.Search(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *UserController) Profile(c *fiber.Ctx) error {
	result, err := h.users.Profile(middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// UpdateProfile accepts either a JSON patch or a multipart form with an
// optional avatar file.
func (h *UserController) UpdateProfile(c *fiber.Ctx) error {
	var in services.UpdateProfileInput
	if _, err := c.MultipartForm(); err == nil {
		in = services.UpdateProfileInput{
			FirstName:   optionalFormValue(c, "firstName"),
			LastName:    optionalFormValue(c, "lastName"),
			PhoneNumber: optionalFormValue(c, "phoneNumber"),
			Country:     optionalFormValue(c, "country"),
			City:        optionalFormValue(c, "city"),
			Gender:      optionalFormValue(c, "gender"),
		}
	} else if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c, err)
	}

	avatar, err := formUpload(c, "avatar")
	if err != nil {
		return respondBadBody(c, err)
	}

	result, err := h.users.UpdateProfile(middleware.CurrentUser(c), in, avatar)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *UserController) FindOne(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.users.FindOne(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *UserController) Follow(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.users.Follow(middleware.CurrentUser(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *UserController) Unfollow(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.users.Unfollow(middleware.CurrentUser(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *UserController) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.users.Delete(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
