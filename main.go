package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"school-admin/auth"
	"school-admin/db"
	"school-admin/handlers"
	"school-admin/middleware"
	"school-admin/store"
)

func main() {
	// Initialize database
	if err := db.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	databaseURL := os.Getenv("DATABASE_URL")
	if err := db.RunMigrations(databaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Signing secret for session tokens. The fallback is for local
	// development only and is logged loudly so it cannot ship unnoticed.
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
		log.Println("WARNING: JWT_SECRET not set, using insecure development secret")
	}

	tokens := auth.NewTokenService(secret, auth.TokenTTL)
	credentials := auth.StaticCredentials{
		Username:    "demo",
		Password:    "password",
		DisplayName: "Demo User",
	}

	students := store.NewPostgresStore(db.Pool)
	authHandler := handlers.NewAuthHandler(tokens, credentials)
	studentHandler := handlers.NewStudentHandler(students)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName: "School Admin API",
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "*",
	}))

	// Routes
	api := app.Group("/api")

	api.Post("/login", authHandler.Login)
	api.Get("/protected", middleware.RequireAuth(tokens), authHandler.Protected)

	// Student endpoints (all behind the auth guard)
	studentRoutes := api.Group("/students", middleware.RequireAuth(tokens))
	studentRoutes.Get("/", studentHandler.List)
	studentRoutes.Post("/", studentHandler.Create)
	studentRoutes.Get("/:id", studentHandler.Get)
	studentRoutes.Put("/:id", studentHandler.Update)
	studentRoutes.Delete("/:id", studentHandler.Delete)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Shutting down server...")
		app.Shutdown()
	}()

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
