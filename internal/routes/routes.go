package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"github.com/socialnet-io/socialnet-backend/internal/config"
	"github.com/socialnet-io/socialnet-backend/internal/handlers"
	"github.com/socialnet-io/socialnet-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	healthHandler *handlers.HealthHandler,
	moderationHandler *handlers.ModerationHandler,
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

	// Reporting — user endpoint (JWT required)
	api.Post("/reports", middleware.JWTProtected(cfg), moderationHandler.CreateReport)

	// Admin moderation console (JWT + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/moderation/reports", moderationHandler.ListReports)
	admin.Patch("/moderation/reports/:id/status", moderationHandler.UpdateReportStatus)
	admin.Post("/moderation/reports/:id/appeal", moderationHandler.ResolveAppeal)
	admin.Post("/moderation/reports/:id/reverse", moderationHandler.ReverseDecision)
	admin.Get("/moderation/reports/:id/target", moderationHandler.GetReportTarget)
}
