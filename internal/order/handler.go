package order

import (
	"github.com/gofiber/fiber/v2"

	"github.com/safeheat/shop-backend/internal/middleware"
)

// Handler serves order lookup for the confirmation page and the ops-only
// status update.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/orders/:sessionId", h.getOrder)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Put("/api/v1/orders/:sessionId/status", h.updateStatus)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")

	o, err := h.service.GetBySessionID(sessionID)
	if err != nil {
		if err == ErrNotFound {
			// The webhook may simply not have been processed yet; callers
			// poll until the order appears.
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(o)
}

type updateStatusRequest struct {
	Status         string `json:"status"`
	TrackingNumber string `json:"trackingNumber"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")

	payload := new(updateStatusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	status, err := ParseStatus(payload.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	o, err := h.service.UpdateStatus(sessionID, status, payload.TrackingNumber)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		}
		middleware.RecordOrderOperation("update_status", false)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	middleware.RecordOrderOperation("update_status", true)
	return c.JSON(o)
}
