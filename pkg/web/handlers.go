// Package web provides the REST surface of the course editor: record CRUD,
// clone, template reads, code utilities, and the certification-body lookup
// proxy.
package web

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/coursedesk/coursedesk/pkg/clients"
	"github.com/coursedesk/coursedesk/pkg/models"
	"github.com/coursedesk/coursedesk/pkg/services"
)

type APIHandlers struct {
	courseService   *services.Course
	templateService *services.Template
	bodyLookup      clients.BodyLookup
	validator       *validator.Validate
}

func NewAPIHandlers(
	courseService *services.Course,
	templateService *services.Template,
	bodyLookup clients.BodyLookup,
	validator *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		courseService:   courseService,
		templateService: templateService,
		bodyLookup:      bodyLookup,
		validator:       validator,
	}
}

func (h *APIHandlers) GetCourses(c fiber.Ctx) error {
	courses, err := h.courseService.List(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"courses": courses,
		"count":   len(courses),
	})
}

func (h *APIHandlers) GetCourse(c fiber.Ctx) error {
	course, err := h.courseService.FetchByID(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(course)
}

func (h *APIHandlers) CreateCourse(c fiber.Ctx) error {
	var course models.Course
	if err := c.Bind().JSON(&course); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	created, err := h.courseService.Create(c.Context(), &course)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) UpdateCourse(c fiber.Ctx) error {
	var course models.Course
	if err := c.Bind().JSON(&course); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	course.ID = c.Params("id")

	updated, err := h.courseService.Update(c.Context(), &course)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) DeleteCourse(c fiber.Ctx) error {
	if err := h.courseService.Delete(c.Context(), c.Params("id")); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) CloneCourse(c fiber.Ctx) error {
	var req services.CloneRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	req.SourceID = c.Params("id")

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, "Invalid clone request: "+err.Error())
	}

	result, err := h.courseService.Clone(c.Context(), req)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *APIHandlers) GetTemplates(c fiber.Ctx) error {
	templates, err := h.templateService.List(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"templates": templates,
		"count":     len(templates),
	})
}

func (h *APIHandlers) GetTemplate(c fiber.Ctx) error {
	template, err := h.templateService.FetchByID(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(template)
}

func (h *APIHandlers) CheckCode(c fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return badRequest(c, "Query parameter 'code' is required")
	}

	available, err := h.courseService.CheckCodeAvailability(c.Context(), code)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"code":      code,
		"available": available,
	})
}

type generateCodeRequest struct {
	Title string `json:"title" validate:"required"`
}

func (h *APIHandlers) GenerateCode(c fiber.Ctx) error {
	var req generateCodeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, "Title is required")
	}

	code, err := h.courseService.GenerateCode(c.Context(), req.Title)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"code": code})
}

func (h *APIHandlers) GetCertificationBodies(c fiber.Ctx) error {
	bodies, err := h.bodyLookup.Bodies(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"bodies": bodies})
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	message, healthy := h.courseService.HealthCheck(c.Context())
	if !healthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "unhealthy",
			"message": message,
		})
	}

	return c.JSON(fiber.Map{
		"status":  "healthy",
		"message": message,
	})
}
