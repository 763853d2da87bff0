// file: internals/features/school/semesters/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	semesterCtl "schoolku_backend/internals/features/school/semesters/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func SemesterAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := semesterCtl.NewSemesterController(db, nil)

	base := api.Group("",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorAdmin("managing semesters"),
			constants.AdminOnly,
		),
	)

	base.Get("/semesters", ctl.List)
	base.Get("/semesters/active", ctl.GetActive)
	base.Get("/semesters/:id", ctl.GetByID)
	base.Post("/semesters", ctl.Create)
	base.Patch("/semesters/:id", ctl.Update)
}
