package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rlumactod/boarding_house/handlers"
	"github.com/rlumactod/boarding_house/middleware"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.RegisterUser)
	auth.Post("/login", handlers.LoginUser)
	auth.Post("/logout", handlers.LogoutUser)
	auth.Get("/verify", middleware.Protected(), handlers.VerifyToken)
}
