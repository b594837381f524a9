package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classRoute "github.com/nvourlidas/CtGym-sub002/internals/features/classes/classes/route"
	scheduleRoute "github.com/nvourlidas/CtGym-sub002/internals/features/classes/schedules/route"
	sessionRoute "github.com/nvourlidas/CtGym-sub002/internals/features/classes/sessions/route"
)

func CatalogMemberRoutes(r fiber.Router, db *gorm.DB) {
	classRoute.ClassMemberRoutes(r, db)
	sessionRoute.ClassSessionMemberRoutes(r, db)
}

func CatalogAdminRoutes(r fiber.Router, db *gorm.DB) {
	classRoute.ClassAdminRoutes(r, db)
	sessionRoute.ClassSessionAdminRoutes(r, db)
	scheduleRoute.ClassScheduleAdminRoutes(r, db)
}
