package checkout

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/safeheat/shop-backend/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/checkout/sessions", h.createSession)
}

func (h *Handler) createSession(c *fiber.Ctx) error {
	payload := new(Payload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"statusCode": fiber.StatusBadRequest,
			"message":    err.Error(),
		})
	}

	sess, err := h.service.CreateSession(c.Context(), *payload)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			middleware.RecordOrderOperation("checkout_session", false)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"statusCode": fiber.StatusBadRequest,
				"message":    err.Error(),
			})
		}
		// Upstream rejection: surfaced to the browser, never retried here.
		middleware.RecordOrderOperation("checkout_session", false)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"statusCode": fiber.StatusBadGateway,
			"message":    err.Error(),
		})
	}

	middleware.RecordOrderOperation("checkout_session", true)
	return c.JSON(sess)
}
