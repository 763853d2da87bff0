// file: internals/features/school/semesters/route/all_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	semesterCtl "schoolku_backend/internals/features/school/semesters/controller"
)

// SemesterAllRoutes: read paths shared by every authenticated role.
func SemesterAllRoutes(api fiber.Router, db *gorm.DB) {
	ctl := semesterCtl.NewSemesterController(db, nil)

	api.Get("/semesters", ctl.List)
	api.Get("/semesters/active", ctl.GetActive)
}
