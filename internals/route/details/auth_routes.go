// file: internals/route/details/auth_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "keuangan_rqm_backend/internals/features/users/auth/controller"
	authMiddleware "keuangan_rqm_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctl := authController.NewAuthController(db)

	auth := app.Group("/api/auth")
	auth.Post("/login", ctl.Login)

	authed := app.Group("/api/auth", authMiddleware.AuthMiddleware(db))
	authed.Get("/me", ctl.Me)
	authed.Post("/change-password", ctl.ChangePassword)

	// alias profil di bawah /api/u supaya konsisten dengan endpoint staf lain
	app.Group("/api/u", authMiddleware.AuthMiddleware(db)).Get("/me", ctl.Me)
}
