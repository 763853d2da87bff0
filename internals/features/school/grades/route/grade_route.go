// file: internals/features/school/grades/route/grade_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/events"
	gradeController "schoolku_backend/internals/features/school/grades/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// GradeTeacherRoutes mounts the submitting side of the workflow.
func GradeTeacherRoutes(api fiber.Router, db *gorm.DB, emitter *events.Emitter) {
	ctl := gradeController.NewGradeController(db, validator.New(), emitter)

	teacher := api.Group("/grade-submissions",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorTeacher("submitting grades"),
			constants.TeacherOnly,
		),
	)
	teacher.Get("/", ctl.ListMine)
	teacher.Get("/:id", ctl.Detail)
	teacher.Post("/", ctl.Submit)
	teacher.Put("/:id/grades", ctl.Replace)
}

// GradeReviewerRoutes mounts the reviewing side. Reviewing is an admin duty.
func GradeReviewerRoutes(api fiber.Router, db *gorm.DB, emitter *events.Emitter) {
	ctl := gradeController.NewGradeController(db, validator.New(), emitter)

	reviewer := api.Group("/grade-submissions",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorAdmin("reviewing grade submissions"),
			constants.AdminOnly,
		),
	)
	reviewer.Get("/", ctl.ReviewInbox)
	reviewer.Get("/:id", ctl.Detail)
	reviewer.Patch("/:id/under-review", ctl.MarkUnderReview)
	reviewer.Patch("/:id/decision", ctl.Decide)
}

// GradeStudentRoutes mounts the student's report card view. Reads never
// emit events, so no emitter is threaded in.
func GradeStudentRoutes(api fiber.Router, db *gorm.DB) {
	ctl := gradeController.NewGradeController(db, validator.New(), nil)

	student := api.Group("/my-grades",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorStudent("viewing grades"),
			constants.StudentOnly,
		),
	)
	student.Get("/", ctl.MyGrades)
}
