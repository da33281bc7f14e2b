package handler

import (
	"go-inventory-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetStockMovement returns stock movement data for charts
// Query params: days (default 7)
func (h *DashboardHandler) GetStockMovement(c *fiber.Ctx) error {
	req := service.StockMovementRequest{Days: 7}
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "Invalid query parameters")
	}

	data, err := h.service.GetStockMovement(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"period": req.Days,
		"data":   data,
	})
}

// GetDashboardStats returns overview statistics
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	return c.JSON(h.service.GetDashboardStats(c.UserContext()))
}
