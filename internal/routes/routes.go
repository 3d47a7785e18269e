package routes

import (
	"time"

	"github.com/drmnef/storefront/internal/config"
	"github.com/drmnef/storefront/internal/handlers"
	"github.com/drmnef/storefront/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	guard *middleware.Guard,
	authHandler *handlers.AuthHandler,
	catalogHandler *handlers.CatalogHandler,
	orderHandler *handlers.OrderHandler,
	settingsHandler *handlers.SettingsHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Public storefront surface
	api.Get("/settings", settingsHandler.Get)
	api.Get("/services", catalogHandler.List)
	api.Get("/service/:serviceType?", catalogHandler.Detail)

	// Request form + submission: guests and authenticated clients share
	// these routes, so the token is optional.
	api.Get("/request-service/:serviceType?", middleware.OptionalJWT(cfg), orderHandler.RequestForm)
	api.Post("/request-service/:serviceType?", middleware.OptionalJWT(cfg), orderHandler.Submit)
	api.Get("/track-order", orderHandler.Track)

	// Auth routes use a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/reset-password", authHandler.ResetPassword)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Client dashboard (client-protected: anonymous callers are redirected
	// to the login page)
	dashboard := api.Group("/dashboard", middleware.OptionalJWT(cfg), guard.RequireClient())
	dashboard.Get("/orders", orderHandler.MyOrders)

	// Admin dashboard (admin-only: non-admins are rerouted, not erred)
	admin := api.Group("/admin", middleware.OptionalJWT(cfg), guard.RequireAdmin())
	admin.Get("/orders", adminHandler.ListOrders)
	admin.Put("/orders/:id/status", adminHandler.UpdateOrderStatus)
	admin.Post("/services", adminHandler.CreateService)
	admin.Put("/services/:id", adminHandler.UpdateService)
	admin.Delete("/services/:id", adminHandler.DeleteService)
	admin.Put("/settings", settingsHandler.Update)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).SendString("Not Found")
	})
}
