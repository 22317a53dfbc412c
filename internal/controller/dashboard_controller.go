// FILE: internal/controller/dashboard_controller.go
package controller

import (
	"strings"

	"velocity-ai-be/internal/pkg/serverutils"
	"velocity-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDashboardController interface {
	RegisterRoutes(r fiber.Router)
	GetTasks(ctx *fiber.Ctx) error
	GetDailySummary(ctx *fiber.Ctx) error
	GetCalendar(ctx *fiber.Ctx) error
	GetCalendarToday(ctx *fiber.Ctx) error
	GetProjects(ctx *fiber.Ctx) error
	GetProject(ctx *fiber.Ctx) error
	GetUpdates(ctx *fiber.Ctx) error
	GetPriorities(ctx *fiber.Ctx) error
	GetTeamMetrics(ctx *fiber.Ctx) error
	GetMetrics(ctx *fiber.Ctx) error
	GetRecentRuns(ctx *fiber.Ctx) error
}

type dashboardController struct {
	service service.IDashboardService
}

func NewDashboardController(service service.IDashboardService) IDashboardController {
	return &dashboardController{service: service}
}

func (c *dashboardController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dashboard")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/tasks", c.GetTasks)
	h.Get("/tasks/summary", c.GetDailySummary)
	h.Get("/calendar", c.GetCalendar)
	h.Get("/calendar/today", c.GetCalendarToday)
	h.Get("/projects", c.GetProjects)
	h.Get("/projects/:id", c.GetProject)
	h.Get("/updates", c.GetUpdates)
	h.Get("/priorities", c.GetPriorities)
	h.Get("/team/metrics", c.GetTeamMetrics)
	h.Get("/metrics", c.GetMetrics)
	h.Get("/runs", c.GetRecentRuns)
}

func (c *dashboardController) GetTasks(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Tasks", c.service.GetTasks()))
}

func (c *dashboardController) GetDailySummary(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Daily summary", c.service.GetDailySummary()))
}

func (c *dashboardController) GetCalendar(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Calendar", c.service.GetCalendar()))
}

func (c *dashboardController) GetCalendarToday(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Today's calendar", c.service.GetCalendarToday()))
}

func (c *dashboardController) GetProjects(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Projects", c.service.GetProjects()))
}

func (c *dashboardController) GetProject(ctx *fiber.Ctx) error {
	res, err := c.service.GetProject(ctx.Params("id"))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Project not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Project detail", res))
}

func (c *dashboardController) GetUpdates(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Integration updates", c.service.GetUpdates()))
}

func (c *dashboardController) GetPriorities(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Priorities", c.service.GetPriorities()))
}

func (c *dashboardController) GetTeamMetrics(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Team metrics", c.service.GetTeamMetrics()))
}

// GetMetrics reports live counters from the database, unlike the curated
// demo endpoints above.
func (c *dashboardController) GetMetrics(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.GetMetrics(ctx.Context(), userId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Dashboard metrics", res))
}

func (c *dashboardController) GetRecentRuns(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	limit := ctx.QueryInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	res, err := c.service.GetRecentRuns(ctx.Context(), userId, limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Recent pipeline runs", res))
}
