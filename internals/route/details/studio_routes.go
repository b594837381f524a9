package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	memberRoute "github.com/nvourlidas/CtGym-sub002/internals/features/members/members/route"
	studioRoute "github.com/nvourlidas/CtGym-sub002/internals/features/studios/studios/route"
)

func StudioAdminRoutes(r fiber.Router, db *gorm.DB) {
	studioRoute.StudioAdminRoutes(r, db)
	memberRoute.MemberAdminRoutes(r, db)
}
