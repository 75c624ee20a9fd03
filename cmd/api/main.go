package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	config "github.com/rezotera/iprep_portal/configs"
	"github.com/rezotera/iprep_portal/database"
	"github.com/rezotera/iprep_portal/handlers"
	"github.com/rezotera/iprep_portal/jobs"
	"github.com/rezotera/iprep_portal/routes"
	"github.com/rezotera/iprep_portal/services"
	"github.com/rezotera/iprep_portal/upstream"
	"github.com/rezotera/iprep_portal/websocket"
	"github.com/robfig/cron/v3"
)

func main() {
	db, err := database.Connect(config.ConfigDefault("PORTAL_DB_PATH", "portal.db"))
	if err != nil {
		log.Fatalf("🔥 Could not open portal database: %v", err)
	}
	database.Migrate(db)

	upstreamURL := config.Config("UPSTREAM_API_URL")
	if upstreamURL == "" {
		log.Fatal("🔥 UPSTREAM_API_URL is not set")
	}
	jwtSecret := config.Config("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("🔥 JWT_SECRET is not set")
	}

	api := upstream.New(upstreamURL)
	sessions := services.NewSessionService(db, api, jwtSecret)
	api.OnUnauthorized(sessions.ClearToken)

	hub := websocket.NewHub()
	go hub.Run()

	activity := services.NewActivityLogger(db, hub)
	exercises := services.NewExerciseService(api)

	c := cron.New()
	c.AddFunc("*/5 * * * *", jobs.PruneSessions(db))
	go c.Start()
	log.Println("✅ Cron job for session pruning scheduled successfully.")

	app := fiber.New(fiber.Config{
		AppName:       "IPrep Portal",
		CaseSensitive: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  30 * time.Second,
		IdleTimeout:   60 * time.Second,
		BodyLimit:     50 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  config.ConfigDefault("CORS_ORIGINS", "*"),
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	routes.AuthRoutes(app, handlers.NewAuthHandler(sessions, activity), jwtSecret, sessions)
	routes.UserRoutes(app, handlers.NewUserHandler(api, activity), jwtSecret, sessions)
	routes.ExerciseRoutes(app, handlers.NewExerciseHandler(exercises, activity), jwtSecret, sessions)
	routes.PromoRoutes(app, handlers.NewPromoHandler(db, activity), jwtSecret, sessions)
	routes.InquiryRoutes(app, handlers.NewInquiryHandler(api), jwtSecret, sessions)
	routes.DashboardRoutes(app, handlers.NewDashboardHandler(activity), hub, jwtSecret, sessions)

	port := config.ConfigDefault("PORT", "8080")
	log.Printf("✅ Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
