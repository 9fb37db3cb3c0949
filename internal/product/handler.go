package product

import (
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products/:slug", h.getProduct)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Put("/api/v1/products/:slug", h.upsertProduct)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	p, err := h.service.GetBySlug(c.Params("slug"))
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(p)
}

func (h *Handler) upsertProduct(c *fiber.Ctx) error {
	payload := new(Product)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	payload.Slug = c.Params("slug")
	if payload.Name == "" || payload.Price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name is required and price must be non-negative"})
	}

	p, err := h.service.Upsert(*payload)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(p)
}
