package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nvourlidas/CtGym-sub002/internals/features/members/members/controller"
)

func MemberAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewMemberController(db)

	r.Post("/members", h.CreateMember)
	r.Get("/members", h.ListMembers)
	r.Get("/members/:id", h.GetMember)
	r.Put("/members/:id", h.UpdateMember)
	r.Delete("/members/:id", h.DeactivateMember)
}
