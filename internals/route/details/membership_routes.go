package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	membershipRoute "github.com/nvourlidas/CtGym-sub002/internals/features/memberships/memberships/route"
	planRoute "github.com/nvourlidas/CtGym-sub002/internals/features/memberships/plans/route"
)

func MembershipMemberRoutes(r fiber.Router, db *gorm.DB) {
	planRoute.MembershipPlanMemberRoutes(r, db)
	membershipRoute.MembershipMemberRoutes(r, db)
}

func MembershipAdminRoutes(r fiber.Router, db *gorm.DB) {
	planRoute.MembershipPlanAdminRoutes(r, db)
	membershipRoute.MembershipAdminRoutes(r, db)
}
