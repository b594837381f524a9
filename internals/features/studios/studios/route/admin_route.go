package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nvourlidas/CtGym-sub002/internals/features/studios/studios/controller"
)

func StudioAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewStudioController(db)

	r.Post("/studios", h.CreateStudio)
	r.Get("/studios", h.ListStudios)
	r.Get("/studios/:id", h.GetStudio)
}
