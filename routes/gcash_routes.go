package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rlumactod/boarding_house/handlers"
	"github.com/rlumactod/boarding_house/middleware"
)

func GcashRoutes(app *fiber.App) {
	api := app.Group("/api")

	gcash := api.Group("/gcash")
	gcash.Post("/initiate-gcash", middleware.Protected(), handlers.InitiateGcashPayment)
	gcash.Get("/gcash-status/:referenceNumber", handlers.GetGcashStatus)
	gcash.Get("/gcash-return", handlers.GcashReturn)
	gcash.Post("/:id/refund", middleware.Protected(), middleware.LandlordRequired(), handlers.RefundPayment)
}
