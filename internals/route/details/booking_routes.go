package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookingRoute "github.com/nvourlidas/CtGym-sub002/internals/features/bookings/bookings/route"
)

func BookingMemberRoutes(r fiber.Router, db *gorm.DB) {
	bookingRoute.BookingMemberRoutes(r, db)
}

func BookingAdminRoutes(r fiber.Router, db *gorm.DB) {
	bookingRoute.BookingAdminRoutes(r, db)
}
