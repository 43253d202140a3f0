package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/haruapp/haru-backend/internal/config"
	"github.com/haruapp/haru-backend/internal/handlers"
	"github.com/haruapp/haru-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	diaryHandler *handlers.DiaryHandler,
	statsHandler *handlers.StatsHandler,
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

	// Public auth endpoints get a stricter rate limit.
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

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Protected routes
	protected := api.Group("", middleware.JWTProtected(cfg))

	protected.Post("/diaries", diaryHandler.CreateEntry)
	protected.Get("/diaries", diaryHandler.ListEntries)
	protected.Get("/diaries/:id", diaryHandler.GetEntry)
	protected.Put("/diaries/:id", diaryHandler.UpdateEntry)
	protected.Delete("/diaries/:id", diaryHandler.DeleteEntry)

	protected.Get("/stats/monthly", statsHandler.GetMonthlyStatistics)
}
