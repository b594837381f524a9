package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nvourlidas/CtGym-sub002/internals/features/classes/classes/controller"
)

func ClassAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewClassController(db)

	r.Post("/classes", h.CreateClass)
	r.Get("/classes", h.ListClasses)
	r.Get("/classes/:id", h.GetClass)
	r.Put("/classes/:id", h.UpdateClass)
	r.Delete("/classes/:id", h.DeleteClass)
}
