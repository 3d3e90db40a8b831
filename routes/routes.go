package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/b-sukumar/salondost-dashboard/config"
	"github.com/b-sukumar/salondost-dashboard/handlers"
	"github.com/b-sukumar/salondost-dashboard/ledger"
	"github.com/b-sukumar/salondost-dashboard/middleware"
	"github.com/b-sukumar/salondost-dashboard/services"
	"github.com/b-sukumar/salondost-dashboard/store"
)

func SetupRoutes(router *gin.Engine, st *store.Store, led *ledger.Ledger, cfg *config.Config, loc *time.Location) {
	// Initialize handlers
	reminder := services.NewReminderComposer(cfg.SalonName)
	authHandler := handlers.NewAuthHandler()
	bookingHandler := handlers.NewBookingHandler(st, reminder, loc)
	customerHandler := handlers.NewCustomerHandler(st)
	catalogHandler := handlers.NewCatalogHandler(st)
	dashboardHandler := handlers.NewDashboardHandler(led, st, loc)
	paymentHandler := handlers.NewPaymentHandler(st, loc)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"success": true,
			"message": "Server is running",
		})
	})

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Everything is behind the route guard; sign-in happens against
		// Supabase Auth from the frontend.
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/auth/me", authHandler.GetMe)

			// Reference catalog
			protected.GET("/staff", catalogHandler.GetStaff)
			protected.GET("/services", catalogHandler.GetServices)

			// Daily khata
			bookings := protected.Group("/bookings")
			{
				bookings.GET("", bookingHandler.GetBookings)
				bookings.POST("", bookingHandler.CreateBooking)
				bookings.PUT("/:id/complete", bookingHandler.CompleteBooking)
				bookings.DELETE("/:id", bookingHandler.DeleteBooking)
				bookings.GET("/:id/reminder", bookingHandler.GetReminder)
			}

			// Customer directory
			customers := protected.Group("/customers")
			{
				customers.GET("", customerHandler.GetCustomers)
				customers.POST("", customerHandler.CreateCustomer)
			}

			// Aggregates and billing
			protected.GET("/dashboard", dashboardHandler.GetDashboard)
			protected.GET("/payments", paymentHandler.GetPayments)
			protected.GET("/payments/export", paymentHandler.ExportPayments)
		}
	}
}
