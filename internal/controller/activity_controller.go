// FILE: internal/controller/activity_controller.go
package controller

import (
	"velocity-ai-be/internal/pkg/serverutils"
	"velocity-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IActivityController interface {
	RegisterRoutes(r fiber.Router)
	GetFeed(ctx *fiber.Ctx) error
}

type activityController struct {
	service service.IActivityService
}

func NewActivityController(service service.IActivityService) IActivityController {
	return &activityController{service: service}
}

func (c *activityController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/activity")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/", c.GetFeed)
}

// GetFeed returns the recent activity feed. Supports ?mode=personal|workspace
// and ?limit= (default 50, capped at 200).
func (c *activityController) GetFeed(ctx *fiber.Ctx) error {
	mode := ctx.Query("mode")
	if mode != "" && mode != "personal" && mode != "workspace" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "mode must be 'personal' or 'workspace'"))
	}

	limit := ctx.QueryInt("limit", 50)
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	res, err := c.service.GetFeed(ctx.Context(), mode, limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Activity feed", res))
}
