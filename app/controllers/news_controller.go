package controllers

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"newsline/app/services"
	"newsline/internal/pkg/middleware"
)

// NewsController handles the article routes.
type NewsController struct {
	news     *services.NewsService
	validate *validator.Validate
}

func NewNewsController(news *services.NewsService) *NewsController {
	return &NewsController{
		news:     news,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the news routes. Static segments go first so
// they are not captured by the :slug parameter.
func (h *NewsController) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	news := router.Group("/news")
	news.Post("/", authRequired, h.Create)
	news.Get("/", h.FindAll)
	news.Get("/search", h.Search)
	news.Get("/following-users-news", authRequired, h.FollowingUsersNews)
	news.Get("/:slug", authRequired, h.FindOne)
	news.Put("/:slug", authRequired, h.Update)
	news.Delete("/:slug", authRequired, h.Delete)
	news.Post("/:slug/like", authRequired, h.Like)
	news.Delete("/:slug/like", authRequired, h.Unlike)
}

// Create accepts a JSON body or a multipart form carrying the article
// fields plus any number of files under "images".
func (h *NewsController) Create(c *fiber.Ctx) error {
	var in services.CreateNewsInput
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(in); err != nil {
		return respondValidationError(c, err)
	}

	uploads, err := formUploads(c, "images")
	if err != nil {
		return respondBadBody(c, err)
	}

	result, err := h.news.Create(in, middleware.CurrentUser(c), uploads)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *NewsController) FindAll(c *fiber.Ctx) error {
	result, err := h.news.FindAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *NewsController) Search(c *fiber.Ctx) error {
	in := services.SearchNewsInput{
		Title: c.Query("title"),
		Body:  c.Query("body"),
		Views: strings.ToUpper(c.Query("views")),
		Take:  c.QueryInt("take", 0),
		Skip:  c.QueryInt("skip", 0),
	}
	if err := h.validate.Struct(in); err != nil {
		return respondValidationError(c, err)
	}

	result, err := h.news.Search(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *NewsController) FollowingUsersNews(c *fiber.Ctx) error {
	result, err := h.news.FollowingUsersNews(middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *NewsController) FindOne(c *fiber.Ctx) error {
	result, err := h.news.FindOne(c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// Update accepts a partial patch; absent fields keep their stored values.
// New files under "images" replace the stored image set.
func (h *NewsController) Update(c *fiber.Ctx) error {
	var in services.UpdateNewsInput
	if _, err := c.MultipartForm(); err == nil {
		in = services.UpdateNewsInput{
			Title: optionalFormValue(c, "title"),
			Body:  optionalFormValue(c, "body"),
		}
	} else if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c, err)
	}

	uploads, err := formUploads(c, "images")
	if err != nil {
		return respondBadBody(c, err)
	}

	result, err := h.news.Update(c.Params("slug"), in, middleware.CurrentUser(c), uploads)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *NewsController) Delete(c *fiber.Ctx) error {
	result, err := h.news.Delete(c.Params("slug"), middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *NewsController) Like(c *fiber.Ctx) error {
	result, err := h.news.Like(c.Params("slug"), middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *NewsController) Unlike(c *fiber.Ctx) error {
	result, err := h.news.Unlike(c.Params("slug"), middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
