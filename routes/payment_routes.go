package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rlumactod/boarding_house/handlers"
	"github.com/rlumactod/boarding_house/middleware"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api")

	payments := api.Group("/payments", middleware.Protected())
	payments.Get("/", handlers.GetPayments)
	payments.Get("/summary", middleware.LandlordRequired(), handlers.GetPaymentSummary)
	payments.Get("/tenant/:tenantId", handlers.GetTenantPayments)
	payments.Get("/:id", handlers.GetPayment)
	payments.Post("/", middleware.LandlordRequired(), handlers.CreatePayment)
	payments.Put("/:id", middleware.LandlordRequired(), handlers.UpdatePayment)
	payments.Post("/:id/pay", middleware.LandlordRequired(), handlers.MarkPaymentPaid)
	payments.Post("/:id/submit-gcash", handlers.SubmitGcashProof)
	payments.Post("/:id/submit-bank", handlers.SubmitBankProof)
}
