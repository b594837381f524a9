package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nvourlidas/CtGym-sub002/internals/features/bookings/bookings/controller"
)

// Admin booking endpoints: check-in gate, hard delete, reassignment, rosters.
func BookingAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewBookingController(db)

	r.Post("/bookings", h.CreateBooking) // book on behalf of a member
	r.Post("/checkins", h.Checkin)
	r.Patch("/bookings/:id", h.UpdateBooking)
	r.Delete("/bookings/:id", h.DeleteBooking)
	r.Get("/class-sessions/:id/bookings", h.ListSessionBookings)
}
