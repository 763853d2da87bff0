// file: internals/features/school/enrollments/route/staff_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	enrollmentController "schoolku_backend/internals/features/school/enrollments/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// EnrollmentStaffRoutes mounts enrollment endpoints for admins and teachers.
// The service decides per-call what a teacher is allowed to touch; the route
// group only keeps students out.
func EnrollmentStaffRoutes(api fiber.Router, db *gorm.DB) {
	ctl := enrollmentController.NewEnrollmentController(db, validator.New())

	staff := api.Group("/enrollments",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorStaff("managing enrollments"),
			constants.StaffRoles,
		),
	)
	staff.Get("/", ctl.ListByContainer)
	staff.Get("/student/:studentId", ctl.ListByStudent)
	staff.Post("/", ctl.EnrollMany)
	staff.Delete("/:id", ctl.Unenroll)
}
