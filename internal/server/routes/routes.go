// internal/server/routes/routes.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cabinreserve/internal/config"
	"cabinreserve/internal/handlers"
	"cabinreserve/internal/middlewares"
)

// Dependencies holds every handler the route table dispatches to. main.go
// builds these from the fully wired service graph.
type Dependencies struct {
	Health         *handlers.HealthHandler
	Cabins         *handlers.CabinHandler
	Availability   *handlers.AvailabilityHandler
	Quote          *handlers.QuoteHandler
	Hold           *handlers.HoldHandler
	Booking        *handlers.BookingHandler
	AdminBookings  *handlers.AdminBookingHandler
	AdminHolds     *handlers.AdminHoldHandler
	AdminAudit     *handlers.AdminAuditHandler
	Webhook        *handlers.WebhookHandler
	Agent          *handlers.AgentHandler
	FAQ            *handlers.FAQHandler
	BusinessFacts  *handlers.BusinessFactHandler
}

// Setup registers every route named in the HTTP surface against router.
func Setup(router *gin.Engine, cfg *config.Config, d Dependencies) {
	router.Use(middlewares.CORS(cfg.CORSOrigins))

	if cfg.CabinImagesDir != "" {
		router.Static(cfg.CabinImagesBaseURL, cfg.CabinImagesDir)
	}

	router.GET("/health", d.Health.Health)
	router.GET("/cabins", d.Cabins.List)
	router.GET("/cabin/calendar/:cabinId", d.Cabins.Calendar)
	router.POST("/availability", d.Availability.Search)
	router.POST("/quote", d.Quote.Quote)
	router.POST("/hold", d.Hold.Create)
	router.GET("/hold/:holdId", d.Hold.Get)
	router.DELETE("/hold/:holdId", d.Hold.Release)
	router.POST("/book", d.Booking.Book)
	router.POST("/agent/chat", d.Agent.Chat)
	router.POST("/webhooks/:gateway", d.Webhook.Handle)

	admin := router.Group("/admin")
	admin.Use(middlewares.AdminAuth(cfg.JWTSecret))
	{
		admin.POST("/bookings/:id/cancel", d.AdminBookings.Cancel)
		admin.GET("/bookings", d.AdminBookings.List)
		admin.GET("/bookings/:id", d.AdminBookings.Get)
		admin.GET("/holds", d.AdminHolds.List)
		admin.GET("/audit", d.AdminAudit.List)

		admin.GET("/faq/pending", d.FAQ.Pending)
		admin.GET("/faq/all", d.FAQ.All)
		admin.POST("/faq/approve", d.FAQ.Approve)
		admin.PUT("/faq/:id", d.FAQ.Update)
		admin.DELETE("/faq/:id", d.FAQ.Delete)

		admin.GET("/business-facts", d.BusinessFacts.List)
		admin.POST("/business-facts", d.BusinessFacts.Upsert)
		admin.DELETE("/business-facts/:key", d.BusinessFacts.Deactivate)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "the requested endpoint does not exist",
			},
			"timestamp": time.Now().UTC(),
		})
	})
}
