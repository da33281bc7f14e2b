package handler

import (
	"errors"

	"go-inventory-ledger/internal/ledger"
	"go-inventory-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service and ledger errors to HTTP responses.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	code := "internal_error"
	message := "Internal Server Error"

	switch kind := ledger.KindOf(err); {
	case kind == ledger.KindProductNotFound:
		status, code, message = fiber.StatusNotFound, string(kind), err.Error()
	case kind == ledger.KindDuplicateEmail, kind == ledger.KindDuplicateSKU:
		status, code, message = fiber.StatusConflict, string(kind), err.Error()
	case kind != "":
		status, code, message = fiber.StatusUnprocessableEntity, string(kind), err.Error()
	case errors.Is(err, service.ErrValidation):
		status, code, message = fiber.StatusUnprocessableEntity, "validation_failed", err.Error()
	case errors.Is(err, service.ErrTransactionNotFound):
		status, code, message = fiber.StatusNotFound, "transaction_not_found", "Transaction not found"
	}

	return c.Status(status).JSON(fiber.Map{"error": message, "code": code})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message, "code": "bad_request"})
}
