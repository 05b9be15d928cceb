package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rlumactod/boarding_house/handlers"
)

func WebhookRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Authenticated by HMAC signature, not by bearer token.
	api.Post("/webhooks/gcash", handlers.HandleGcashWebhook)
}
