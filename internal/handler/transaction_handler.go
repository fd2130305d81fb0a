package handler

import (
	"github.com/Tabish5858/inventory-managment-system/internal/model"
	"github.com/Tabish5858/inventory-managment-system/internal/repository"
	"github.com/Tabish5858/inventory-managment-system/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TransactionHandler struct {
	service service.InventoryService
}

func NewTransactionHandler(s service.InventoryService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	query := repository.TransactionQuery{
		Type:     c.Query("transaction_type"),
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
	}
	if raw := c.Query("product"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
		}
		query.Product = &id
	}

	transactions, err := h.service.GetTransactions(query)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(transactionResponses(transactions))
}

// GetByProduct lists a product's ledger history, newest first.
func (h *TransactionHandler) GetByProduct(c *fiber.Ctx) error {
	raw := c.Query("product_id")
	if raw == "" {
		return fail(c, service.ErrProductIDRequired)
	}
	productID, err := uuid.Parse(raw)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	transactions, err := h.service.GetTransactionsByProduct(productID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(transactionResponses(transactions))
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	transaction, err := h.service.GetTransaction(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(transaction.ToResponse())
}

func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var req model.TransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	transaction, _, err := h.service.RecordTransaction(&req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(transaction.ToResponse())
}

func (h *TransactionHandler) UpdateTransaction(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var req model.TransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	transaction, err := h.service.UpdateTransaction(id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(transaction.ToResponse())
}

func (h *TransactionHandler) DeleteTransaction(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	if err := h.service.DeleteTransaction(id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func transactionResponses(transactions []model.Transaction) []model.TransactionResponse {
	resp := make([]model.TransactionResponse, len(transactions))
	for i := range transactions {
		resp[i] = transactions[i].ToResponse()
	}
	return resp
}
