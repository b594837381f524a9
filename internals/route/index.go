package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authMiddleware "github.com/nvourlidas/CtGym-sub002/internals/middlewares/auth"
	routeDetails "github.com/nvourlidas/CtGym-sub002/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== GROUPS =====================

	// MEMBER → JWT required
	log.Println("[INFO] Setting up MEMBER group...")
	member := app.Group("/api/m",
		authMiddleware.AuthMiddleware(),
	)

	// ADMIN → JWT + admin role
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyAdminMiddleware(),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Catalog routes...")
	routeDetails.CatalogMemberRoutes(member, db)
	routeDetails.CatalogAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Membership routes...")
	routeDetails.MembershipMemberRoutes(member, db)
	routeDetails.MembershipAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Booking routes...")
	routeDetails.BookingMemberRoutes(member, db)
	routeDetails.BookingAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Studio routes...")
	routeDetails.StudioAdminRoutes(admin, db)
}
