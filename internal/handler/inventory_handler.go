package handler

import (
	"go-inventory-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service  service.InventoryService
	pageSize int
}

func NewInventoryHandler(s service.InventoryService, pageSize int) *InventoryHandler {
	return &InventoryHandler{service: s, pageSize: pageSize}
}

// CreateProduct registers a product with its opening stock
// POST /api/v1/products
func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	product, err := h.service.CreateProduct(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Product registered successfully", "data": product})
}

// UpdateProduct changes name and price
// PUT /api/v1/products/:sku
func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	product, err := h.service.UpdateProduct(c.UserContext(), c.Params("sku"), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

// AdjustStock adds or removes units
// POST /api/v1/products/:sku/stock
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var req service.AdjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	tx, err := h.service.AdjustStock(c.UserContext(), c.Params("sku"), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": tx.Description, "data": tx})
}

func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	return c.JSON(h.service.GetAllProducts(c.UserContext()))
}

// GetProduct looks a product up by SKU, case-insensitively
// GET /api/v1/products/:sku
func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.UserContext(), c.Params("sku"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// GetTransactions returns one page of the audit trail, newest first
// GET /api/v1/transactions?page=1&page_size=10
func (h *InventoryHandler) GetTransactions(c *fiber.Ctx) error {
	req := service.PageRequest{Page: 1, PageSize: h.pageSize}
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "Invalid query parameters")
	}

	page, err := h.service.GetTransactions(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

func (h *InventoryHandler) GetTransaction(c *fiber.Ctx) error {
	tx, err := h.service.GetTransactionByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tx)
}
