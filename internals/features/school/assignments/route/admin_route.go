// file: internals/features/school/assignments/route/admin_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	assignmentController "schoolku_backend/internals/features/school/assignments/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// AssignmentAdminRoutes mounts the teaching-assignment endpoints. Creation
// and edits are admin actions; reads stay behind the same group because the
// ledger exposes person ids.
func AssignmentAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := assignmentController.NewAssignmentController(db, validator.New())

	admin := api.Group("/teaching-assignments",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorAdmin("managing teaching assignments"),
			constants.AdminOnly,
		),
	)
	admin.Get("/", ctl.ListByEntity)
	admin.Get("/current", ctl.GetCurrent)
	admin.Get("/:id", ctl.GetByID)
	admin.Post("/", ctl.Create)
	admin.Patch("/:id", ctl.Update)
}
