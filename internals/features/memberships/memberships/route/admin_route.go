package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nvourlidas/CtGym-sub002/internals/features/memberships/memberships/controller"
)

func MembershipAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewMembershipController(db)

	r.Post("/memberships", h.CreateMembership)
	r.Get("/memberships", h.ListMemberships)
	r.Patch("/memberships/:id/status", h.UpdateMembershipStatus)
}
