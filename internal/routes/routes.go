package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/strideapp/stride-backend/internal/config"
	"github.com/strideapp/stride-backend/internal/handlers"
	"github.com/strideapp/stride-backend/internal/middleware"
)

// Setup registers all HTTP routes. The membership paths match the mobile and
// web clients, so they live at the root rather than under an /api prefix.
func Setup(
	app *fiber.App,
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	membershipHandler *handlers.MembershipHandler,
) {
	// General rate limiter: 60 req/min per IP
	app.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	app.Get("/health", healthHandler.Check)

	// Membership endpoints (JWT required)
	protected := app.Group("/", middleware.JWTProtected(cfg))
	protected.Post("/buy_membership", membershipHandler.Buy)
	protected.Delete("/cancel_membership", membershipHandler.Cancel)
	protected.Post("/update_membership", membershipHandler.Update)
	protected.Get("/get_current_membership", membershipHandler.GetCurrent)
	protected.Get("/get_billing_cycle_date", membershipHandler.GetBillingCycleDate)
	protected.Get("/get_pending_membership", membershipHandler.GetPending)
	protected.Get("/has_active_membership", membershipHandler.HasActive)
}
