// Package main provides the coursedesk API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/coursedesk/coursedesk/pkg/clients"
	"github.com/coursedesk/coursedesk/pkg/persistence"
	"github.com/coursedesk/coursedesk/pkg/services"
	"github.com/coursedesk/coursedesk/pkg/web"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	bodyLookup  clients.BodyLookup
	validate    *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	bodyLookup clients.BodyLookup,
) *API {
	return &API{
		logger:      logger,
		persistence: persistence,
		bodyLookup:  bodyLookup,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	courseService := services.NewCourse(a.persistence, a.logger)
	templateService := services.NewTemplate(a.persistence, a.logger)

	handlers := web.NewAPIHandlers(courseService, templateService, a.bodyLookup, a.validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("coursedesk API")
	})

	courses := app.Group("/courses")
	courses.Get("/", handlers.GetCourses)
	courses.Post("/", handlers.CreateCourse)
	courses.Get("/:id", handlers.GetCourse)
	courses.Patch("/:id", handlers.UpdateCourse)
	courses.Delete("/:id", handlers.DeleteCourse)
	courses.Post("/:id/clone", handlers.CloneCourse)

	templates := app.Group("/templates")
	templates.Get("/", handlers.GetTemplates)
	templates.Get("/:id", handlers.GetTemplate)

	codes := app.Group("/codes")
	codes.Get("/check", handlers.CheckCode)
	codes.Post("/generate", handlers.GenerateCode)

	app.Get("/certification-bodies", handlers.GetCertificationBodies)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	err := app.Listen(":" + strconv.Itoa(port))

	return err
}
