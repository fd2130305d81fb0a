package router

import (
	"github.com/Tabish5858/inventory-managment-system/internal/handler"
	"github.com/Tabish5858/inventory-managment-system/internal/repository"
	"github.com/Tabish5858/inventory-managment-system/internal/service"
	"github.com/Tabish5858/inventory-managment-system/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// New wires repositories, services, and handlers into a Fiber app.
func New(db *gorm.DB, wsHub *ws.Hub) *fiber.App {
	// Dependency Injection (Wiring Layers)
	categoryRepo := repository.NewCategoryRepo(db)
	productRepo := repository.NewProductRepo(db)
	txRepo := repository.NewTransactionRepo(db)

	catalogService := service.NewCatalogService(categoryRepo, productRepo, db, wsHub)
	invService := service.NewInventoryService(productRepo, txRepo, db, wsHub)

	categoryHandler := handler.NewCategoryHandler(catalogService)
	productHandler := handler.NewProductHandler(catalogService)
	txHandler := handler.NewTransactionHandler(invService)

	app := fiber.New(fiber.Config{
		AppName: "Inventory Management System v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	api := app.Group("/api/v1")

	// Category Routes
	categories := api.Group("/categories")
	categories.Get("/", categoryHandler.GetCategories)
	categories.Post("/", categoryHandler.CreateCategory)
	categories.Get("/:id", categoryHandler.GetCategory)
	categories.Put("/:id", categoryHandler.UpdateCategory)
	categories.Delete("/:id", categoryHandler.DeleteCategory)

	// Product Routes (low-stock before :id so the report isn't shadowed)
	products := api.Group("/products")
	products.Get("/", productHandler.GetProducts)
	products.Post("/", productHandler.CreateProduct)
	products.Get("/low-stock", productHandler.GetLowStock)
	products.Get("/:id", productHandler.GetProduct)
	products.Put("/:id", productHandler.UpdateProduct)
	products.Delete("/:id", productHandler.DeleteProduct)

	// Transaction Routes
	transactions := api.Group("/transactions")
	transactions.Get("/", txHandler.GetTransactions)
	transactions.Post("/", txHandler.CreateTransaction)
	transactions.Get("/by-product", txHandler.GetByProduct)
	transactions.Get("/:id", txHandler.GetTransaction)
	transactions.Put("/:id", txHandler.UpdateTransaction)
	transactions.Delete("/:id", txHandler.DeleteTransaction)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	return app
}
