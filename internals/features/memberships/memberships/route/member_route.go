package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nvourlidas/CtGym-sub002/internals/features/memberships/memberships/controller"
)

func MembershipMemberRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewMembershipController(db)

	r.Get("/memberships/me", h.ListMyMemberships)
}
