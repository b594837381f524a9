package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nvourlidas/CtGym-sub002/internals/features/memberships/plans/controller"
)

// Members can browse the plan catalog.
func MembershipPlanMemberRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewMembershipPlanController(db)

	r.Get("/membership-plans", h.ListPlans)
	r.Get("/membership-plans/:id", h.GetPlan)
}
