// file: internals/route/details/user_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "keuangan_rqm_backend/internals/features/users/user/controller"
)

func UserRoutes(authed fiber.Router, admin fiber.Router, db *gorm.DB) {
	ctl := userController.NewUserController(db)

	// daftar santri dipakai grid monitoring semua role staff
	authed.Get("/students", ctl.ListStudents)

	admin.Post("/users", ctl.Create)
	admin.Get("/users", ctl.List)
	admin.Get("/users/:id", ctl.GetByID)
	admin.Patch("/users/:id", ctl.Patch)
	admin.Delete("/users/:id", ctl.Delete)
}
