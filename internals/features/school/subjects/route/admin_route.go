// file: internals/features/school/subjects/route/admin_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	subjectController "schoolku_backend/internals/features/school/subjects/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func SubjectAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := subjectController.NewSubjectController(db, validator.New())

	admin := api.Group("/subjects",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorAdmin("managing subjects"),
			constants.AdminOnly,
		),
	)
	admin.Get("/", ctl.List)
	admin.Get("/:id", ctl.GetByID)
	admin.Post("/", ctl.Create)
	admin.Patch("/:id", ctl.Update)
}

func SubjectStaffRoutes(api fiber.Router, db *gorm.DB) {
	ctl := subjectController.NewSubjectController(db, validator.New())

	staff := api.Group("/subjects",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorStaff("viewing subjects"),
			constants.StaffRoles,
		),
	)
	staff.Get("/", ctl.List)
	staff.Get("/:id", ctl.GetByID)
}
