package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nvourlidas/CtGym-sub002/internals/features/classes/sessions/controller"
)

// Members browse the timetable.
func ClassSessionMemberRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewClassSessionController(db)

	r.Get("/class-sessions", h.ListSessions)
	r.Get("/class-sessions/:id", h.GetSession)
}
