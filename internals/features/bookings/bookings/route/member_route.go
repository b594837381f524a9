package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nvourlidas/CtGym-sub002/internals/features/bookings/bookings/controller"
	middlewares "github.com/nvourlidas/CtGym-sub002/internals/middlewares"
)

// Member-facing booking endpoints (authenticated).
func BookingMemberRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewBookingController(db)

	r.Post("/bookings", middlewares.BookingRateLimiter(), h.CreateBooking)
	r.Get("/bookings/me", h.ListMyBookings)
	r.Patch("/bookings/:id", h.UpdateBooking)
}
