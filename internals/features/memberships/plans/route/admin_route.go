package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nvourlidas/CtGym-sub002/internals/features/memberships/plans/controller"
)

func MembershipPlanAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewMembershipPlanController(db)

	r.Post("/membership-plans", h.CreatePlan)
	r.Get("/membership-plans", h.ListPlans)
	r.Get("/membership-plans/:id", h.GetPlan)
	r.Put("/membership-plans/:id", h.UpdatePlan)
	r.Delete("/membership-plans/:id", h.DeletePlan)
}
