package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	config "github.com/rlumactod/boarding_house/configs"
	"github.com/rlumactod/boarding_house/database"
	"github.com/rlumactod/boarding_house/jobs"
	"github.com/rlumactod/boarding_house/notifications"
	"github.com/rlumactod/boarding_house/routes"
	"github.com/rlumactod/boarding_house/websocket"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedLandlord()
	notifications.InitEmailService()

	c := cron.New()
	c.AddFunc("0 0 * * *", jobs.MarkOverduePayments)
	c.AddFunc("0 8 * * *", jobs.SendRentReminders)
	go c.Start()
	log.Println("✅ Cron jobs for overdue sweep and rent reminders scheduled.")

	go websocket.RunHub()

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "Boarding House",
		CaseSensitive:     true,
		StrictRouting:     false,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Signature, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Manila",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to Boarding House API",
		})
	})

	routes.AuthRoutes(app)
	routes.TenantRoutes(app)
	routes.PaymentRoutes(app)
	routes.GcashRoutes(app)
	routes.WebhookRoutes(app)
	routes.UploadRoutes(app)
	routes.WebsocketRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	port := config.Config("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("✅ Server is running on port %s", port)
	err := app.Listen(":" + port)
	if err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
