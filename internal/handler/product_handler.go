package handler

import (
	"strconv"

	"github.com/Tabish5858/inventory-managment-system/internal/model"
	"github.com/Tabish5858/inventory-managment-system/internal/repository"
	"github.com/Tabish5858/inventory-managment-system/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	service service.CatalogService
}

func NewProductHandler(s service.CatalogService) *ProductHandler {
	return &ProductHandler{service: s}
}

func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	query := repository.ProductQuery{
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
	}
	if raw := c.Query("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
		}
		query.Category = &id
	}
	if raw := c.Query("low_stock"); raw != "" {
		low, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid low_stock value"})
		}
		query.LowStock = &low
	}

	products, err := h.service.GetProducts(query)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(productResponses(products))
}

// GetLowStock is the low-stock report: products at or below their threshold,
// recomputed on every request.
func (h *ProductHandler) GetLowStock(c *fiber.Ctx) error {
	products, err := h.service.GetLowStockProducts()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(productResponses(products))
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(product.ToResponse())
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req model.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.CreateProduct(&req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(product.ToResponse())
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req model.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.UpdateProduct(id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(product.ToResponse())
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func productResponses(products []model.Product) []model.ProductResponse {
	resp := make([]model.ProductResponse, len(products))
	for i := range products {
		resp[i] = products[i].ToResponse()
	}
	return resp
}
