// FILE: internal/controller/integration_controller.go
package controller

import (
	"strings"

	"velocity-ai-be/internal/pkg/serverutils"
	"velocity-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IIntegrationController interface {
	RegisterRoutes(r fiber.Router)
	GetStatus(ctx *fiber.Ctx) error
	Connect(ctx *fiber.Ctx) error
	HandleGoogleCallback(ctx *fiber.Ctx) error
	Disconnect(ctx *fiber.Ctx) error
}

type integrationController struct {
	service service.IIntegrationService
}

func NewIntegrationController(service service.IIntegrationService) IIntegrationController {
	return &integrationController{service: service}
}

func (c *integrationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/integrations")

	// The OAuth callback is hit by Google's redirect, not by our
	// frontend, so it cannot carry a JWT.
	h.Get("/google/callback", c.HandleGoogleCallback)

	auth := h.Group("", serverutils.JwtMiddleware)
	auth.Get("/", c.GetStatus)
	auth.Post("/:service/connect", c.Connect)
	auth.Delete("/:provider", c.Disconnect)
}

func (c *integrationController) GetStatus(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.GetStatus(ctx.Context(), userId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Integration status", res))
}

func (c *integrationController) Connect(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.Connect(ctx.Context(), userId, ctx.Params("service"))
	if err != nil {
		if strings.Contains(err.Error(), "unsupported service") {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		}
		if strings.Contains(err.Error(), "not configured") {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse(503, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Authorization URL created", res))
}

func (c *integrationController) HandleGoogleCallback(ctx *fiber.Ctx) error {
	redirectURL := c.service.HandleCallback(
		ctx.Context(),
		ctx.Query("code"),
		ctx.Query("state"),
		ctx.Query("error"),
	)
	return ctx.Redirect(redirectURL, fiber.StatusFound)
}

func (c *integrationController) Disconnect(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	if err := c.service.Disconnect(ctx.Context(), userId, ctx.Params("provider")); err != nil {
		if strings.Contains(err.Error(), "not connected") {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Integration disconnected", nil))
}
