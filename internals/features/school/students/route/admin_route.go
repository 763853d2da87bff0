// file: internals/features/school/students/route/admin_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	studentController "schoolku_backend/internals/features/school/students/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func StudentAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := studentController.NewStudentController(db, validator.New())

	admin := api.Group("/students",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorAdmin("managing students"),
			constants.AdminOnly,
		),
	)
	admin.Get("/", ctl.List)
	admin.Get("/:id", ctl.GetByID)
	admin.Post("/", ctl.Create)
	admin.Patch("/:id", ctl.Update)
}

func StudentStaffRoutes(api fiber.Router, db *gorm.DB) {
	ctl := studentController.NewStudentController(db, validator.New())

	staff := api.Group("/students",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorStaff("viewing students"),
			constants.StaffRoles,
		),
	)
	staff.Get("/", ctl.List)
	staff.Get("/:id", ctl.GetByID)
}
