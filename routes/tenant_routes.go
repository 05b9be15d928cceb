package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rlumactod/boarding_house/handlers"
	"github.com/rlumactod/boarding_house/middleware"
)

func TenantRoutes(app *fiber.App) {
	api := app.Group("/api")

	tenants := api.Group("/tenants", middleware.Protected())
	tenants.Get("/", handlers.GetTenants)
	tenants.Get("/:id", handlers.GetTenant)
	tenants.Post("/", middleware.LandlordRequired(), handlers.CreateTenant)
	tenants.Put("/:id", middleware.LandlordRequired(), handlers.UpdateTenant)
	tenants.Delete("/:id", middleware.LandlordRequired(), handlers.DeleteTenant)
}
