package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nvourlidas/CtGym-sub002/internals/features/classes/schedules/controller"
)

func ClassScheduleAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewClassScheduleController(db)

	r.Post("/class-schedules", h.CreateSchedule)
	r.Get("/class-schedules", h.ListSchedules)
	r.Put("/class-schedules/:id", h.UpdateSchedule)
	r.Delete("/class-schedules/:id", h.DeleteSchedule)
}
