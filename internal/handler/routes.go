package handler

import "github.com/gofiber/fiber/v2"

// Handlers bundles everything the router needs.
type Handlers struct {
	Inventory *InventoryHandler
	Users     *UserHandler
	Dashboard *DashboardHandler
	WS        *WSHandler
}

func RegisterRoutes(app *fiber.App, h Handlers) {
	api := app.Group("/api/v1")

	api.Get("/users", h.Users.GetUsers)
	api.Post("/users", h.Users.RegisterUser)

	api.Get("/products", h.Inventory.GetProducts)
	api.Post("/products", h.Inventory.CreateProduct)
	api.Get("/products/:sku", h.Inventory.GetProduct)
	api.Put("/products/:sku", h.Inventory.UpdateProduct)
	api.Post("/products/:sku/stock", h.Inventory.AdjustStock)

	api.Get("/transactions", h.Inventory.GetTransactions)
	api.Get("/transactions/:id", h.Inventory.GetTransaction)

	api.Get("/dashboard/stats", h.Dashboard.GetDashboardStats)
	api.Get("/dashboard/stock-movement", h.Dashboard.GetStockMovement)

	if h.WS != nil {
		app.Use("/ws", h.WS.RequireUpgrade)
		app.Get("/ws", h.WS.Feed())
	}
}
