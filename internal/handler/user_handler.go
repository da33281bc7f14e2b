package handler

import (
	"go-inventory-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterUser handles sign-up
// POST /api/v1/users
func (h *UserHandler) RegisterUser(c *fiber.Ctx) error {
	var req service.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	user, err := h.userService.RegisterUser(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"data":    user.ToResponse(),
	})
}

// GetUsers returns all users and whether registration has happened
// GET /api/v1/users
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	return c.JSON(fiber.Map{
		"registered": h.userService.Registered(ctx),
		"data":       h.userService.GetAllUsers(ctx),
	})
}
