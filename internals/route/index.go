// file: internals/route/index.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"keuangan_rqm_backend/internals/constants"
	authMiddleware "keuangan_rqm_backend/internals/middlewares/auth"
	routeDetails "keuangan_rqm_backend/internals/route/details"
)

// SetupRoutes mendaftarkan seluruh endpoint aplikasi.
//
// Grup:
//   - /api/auth : login publik + profil (token)
//   - /api/u    : semua role staf yang sudah login (ADMIN/KOMITE/GURU/SANTRI)
//   - /api/a    : khusus ADMIN
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routeDetails.AuthRoutes(app, db)

	authed := app.Group("/api/u", authMiddleware.AuthMiddleware(db))
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(
			constants.RoleErrorAdmin("panel admin"),
			constants.RoleAdmin,
		),
	)

	routeDetails.UserRoutes(authed, admin, db)
	routeDetails.FinanceRoutes(authed, admin, db)
}
