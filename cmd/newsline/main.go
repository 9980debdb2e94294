package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"newsline/app/repository"
	"newsline/app/services"
	"newsline/internal/pkg/database"
	"newsline/internal/pkg/env"
	"newsline/internal/pkg/mail"
	"newsline/internal/pkg/router"
	"newsline/internal/pkg/storage"
	"newsline/internal/pkg/token"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()

	repos := repository.NewRepositories(database.GetDB())
	tokens := token.NewService(env.GetEnv("JWT_SECRET", ""))
	mailer := mail.NewSMTPMailer()

	files, err := storage.NewLocalStore()
	if err != nil {
		log.Fatalf("Failed to set up file store: %v", err)
	}

	authService := services.NewAuthService(repos.User, tokens, mailer)
	userService := services.NewUserService(repos.User, files)
	newsService := services.NewNewsService(repos.News, repos.User, repos.Image, files)
	commentService := services.NewCommentService(repos.Comment, repos.News)

	app := fiber.New(fiber.Config{
		BodyLimit: 16 * 1024 * 1024,
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "admin"),
		},
	}), monitor.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// stored uploads
	app.Static("/uploads", env.GetEnv("UPLOAD_DIR", "./uploads"), fiber.Static{
		CacheDuration: 10 * time.Second,
		MaxAge:        604800, // 7 days
	})

	router.Install(app, router.Deps{
		Auth:     authService,
		Users:    userService,
		News:     newsService,
		Comments: commentService,
		UserRepo: repos.User,
		Tokens:   tokens,
	})

	return app
}
