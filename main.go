package main

import (
	"log"
	"park_manager/config"
	"park_manager/database"
	"park_manager/helper"
	"park_manager/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // uploads de imagem do catálogo
	})

	helper.StartOrderScheduler()
	defer helper.StopOrderScheduler()
	helper.StartCustomerReconciler()
	defer helper.StopCustomerReconciler()

	allowOrigins := config.Config("FRONTEND_URL")
	if allowOrigins == "" {
		allowOrigins = "http://localhost:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()

	router.SetupRoutes(app)
	log.Fatal(app.Listen(":8002"))
}
