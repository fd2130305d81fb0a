package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Tabish5858/inventory-managment-system/internal/model"
	"github.com/Tabish5858/inventory-managment-system/internal/router"
	"github.com/Tabish5858/inventory-managment-system/internal/ws"
	"github.com/Tabish5858/inventory-managment-system/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	if err := db.AutoMigrate(&model.Category{}, &model.Product{}, &model.Transaction{}); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Setup Fiber
	app := router.New(db, wsHub)

	// 5. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
