package router

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	redisstorage "github.com/gofiber/storage/redis"

	"newsline/app/controllers"
	"newsline/app/repository"
	"newsline/app/services"
	"newsline/internal/pkg/env"
	"newsline/internal/pkg/middleware"
	"newsline/internal/pkg/token"
)

// Deps bundles everything the HTTP layer needs.
type Deps struct {
	Auth     *services.AuthService
	Users    *services.UserService
	News     *services.NewsService
	Comments *services.CommentService
	UserRepo repository.UserRepository
	Tokens   *token.Service
}

// Install mounts the /api group with rate limiting and all controllers.
func Install(app *fiber.App, deps Deps) {
	api := app.Group("/api", apiLimiter())

	authRequired := middleware.AuthRequired(deps.UserRepo, deps.Tokens)
	adminRequired := middleware.AdminRequired(deps.UserRepo)

	controllers.NewAuthController(deps.Auth).RegisterRoutes(api, authRequired)
	controllers.NewUserController(deps.Users).RegisterRoutes(api, authRequired, adminRequired)
	controllers.NewNewsController(deps.News).RegisterRoutes(api, authRequired)
	controllers.NewCommentController(deps.Comments).RegisterRoutes(api, authRequired)
}

// apiLimiter rate-limits the API group. With CACHE_HOST set the counters
// live in redis so multiple instances share them; otherwise in memory.
func apiLimiter() fiber.Handler {
	cfg := limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}

	if host := env.GetEnv("CACHE_HOST", ""); host != "" {
		port, err := strconv.Atoi(env.GetEnv("CACHE_PORT", "6379"))
		if err != nil {
			port = 6379
		}
		cfg.Storage = redisstorage.New(redisstorage.Config{
			Host: host,
			Port: port,
		})
	}

	return limiter.New(cfg)
}
