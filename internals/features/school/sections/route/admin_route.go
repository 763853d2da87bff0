// file: internals/features/school/sections/route/admin_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	sectionController "schoolku_backend/internals/features/school/sections/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func SectionAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := sectionController.NewSectionController(db, validator.New())

	admin := api.Group("/sections",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorAdmin("managing sections"),
			constants.AdminOnly,
		),
	)
	admin.Get("/", ctl.List)
	admin.Get("/:id", ctl.GetByID)
	admin.Post("/", ctl.Create)
	admin.Patch("/:id", ctl.Update)
}

// SectionStaffRoutes exposes read-only section data to admins and teachers.
func SectionStaffRoutes(api fiber.Router, db *gorm.DB) {
	ctl := sectionController.NewSectionController(db, validator.New())

	staff := api.Group("/sections",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorStaff("viewing sections"),
			constants.StaffRoles,
		),
	)
	staff.Get("/", ctl.List)
	staff.Get("/:id", ctl.GetByID)
}
