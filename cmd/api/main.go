package main

import (
	"context"
	"log"
	"time"

	config "github.com/anjiri1684/pgym_booking/configs"
	"github.com/anjiri1684/pgym_booking/database"
	"github.com/anjiri1684/pgym_booking/events"
	"github.com/anjiri1684/pgym_booking/handlers"
	"github.com/anjiri1684/pgym_booking/jobs"
	"github.com/anjiri1684/pgym_booking/notifications"
	"github.com/anjiri1684/pgym_booking/ratelimit"
	"github.com/anjiri1684/pgym_booking/routes"
	"github.com/anjiri1684/pgym_booking/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func setupEventBus() {
	if url := config.Config("NATS_URL"); url != "" {
		bus, err := events.NewNATSEventBus(url)
		if err != nil {
			log.Fatalf("🔥 %v", err)
		}
		events.Default = bus
		log.Println("✅ Connected to NATS event bus")
	} else {
		log.Println("NATS_URL not set, using in-process event bus")
	}

	dispatcher := notifications.NewDispatcher(notifications.EmailClient)
	if err := dispatcher.Register(events.Default); err != nil {
		log.Fatalf("🔥 Failed to register notification dispatcher: %v", err)
	}
}

func setupRateLimiter() {
	url := config.Config("REDIS_URL")
	if url == "" {
		log.Println("REDIS_URL not set, magic link requests are not throttled")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := ratelimit.Connect(ctx, url)
	if err != nil {
		log.Fatalf("🔥 %v", err)
	}
	handlers.MagicLinkLimiter = ratelimit.NewRedisLimiter(client, "pgym:magic:", config.Int("MAGIC_LINK_MAX_PER_HOUR", 5), time.Hour)
	log.Println("✅ Magic link throttle backed by Redis")
}

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	notifications.InitEmailService()
	setupEventBus()
	setupRateLimiter()

	if config.Bool("GENERATE_SLOTS_ON_STARTUP", true) {
		go jobs.GeneratePersonalSlots()
	}
	c := cron.New(cron.WithLocation(config.Location()))
	if _, err := c.AddFunc(config.String("SLOT_GENERATION_CRON", "15 2 * * *"), jobs.GeneratePersonalSlots); err != nil {
		log.Fatalf("🔥 Invalid SLOT_GENERATION_CRON: %v", err)
	}
	c.AddFunc("*/5 * * * *", jobs.SendClassReminders)
	c.AddFunc("@hourly", jobs.PurgeMagicTokens)
	c.Start()
	log.Println("✅ Cron jobs scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:       false,
		AppName:       "Pgym Booking",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
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
		AllowOrigins:  config.String("CORS_ALLOW_ORIGINS", "*"),
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   config.String("APP_TIMEZONE", "Europe/Zurich"),
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to the Pgym booking API",
		})
	})

	routes.SessionRoutes(app)
	routes.AuthRoutes(app)
	routes.MemberRoutes(app)
	routes.AdminRoutes(app)
	routes.RealtimeRoutes(app)

	go websocket.RunHub()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	port := config.String("PORT", "8080")
	log.Printf("✅ Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
