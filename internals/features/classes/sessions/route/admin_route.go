package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nvourlidas/CtGym-sub002/internals/features/classes/sessions/controller"
)

func ClassSessionAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewClassSessionController(db)

	r.Post("/class-sessions", h.CreateSession)
	r.Get("/class-sessions", h.ListSessions)
	r.Get("/class-sessions/:id", h.GetSession)
	r.Put("/class-sessions/:id", h.UpdateSession)
	r.Delete("/class-sessions/:id", h.DeleteSession)
}
