// file: internals/route/routes.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/events"
	assignmentRoute "schoolku_backend/internals/features/school/assignments/route"
	enrollmentRoute "schoolku_backend/internals/features/school/enrollments/route"
	gradeRoute "schoolku_backend/internals/features/school/grades/route"
	sectionRoute "schoolku_backend/internals/features/school/sections/route"
	semesterRoute "schoolku_backend/internals/features/school/semesters/route"
	studentRoute "schoolku_backend/internals/features/school/students/route"
	subjectRoute "schoolku_backend/internals/features/school/subjects/route"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// SetupRoutes wires every feature under three authenticated groups:
// /api/a (admin), /api/u (teacher), /api/s (student).
func SetupRoutes(app *fiber.App, db *gorm.DB, emitter *events.Emitter) {
	BaseRoutes(app)

	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a", authMiddleware.AuthMiddleware())
	semesterRoute.SemesterAdminRoutes(admin, db)
	assignmentRoute.AssignmentAdminRoutes(admin, db)
	sectionRoute.SectionAdminRoutes(admin, db)
	subjectRoute.SubjectAdminRoutes(admin, db)
	studentRoute.StudentAdminRoutes(admin, db)
	gradeRoute.GradeReviewerRoutes(admin, db, emitter)

	log.Println("[INFO] Setting up TEACHER group...")
	teacher := app.Group("/api/u", authMiddleware.AuthMiddleware())
	semesterRoute.SemesterAllRoutes(teacher, db)
	sectionRoute.SectionStaffRoutes(teacher, db)
	subjectRoute.SubjectStaffRoutes(teacher, db)
	studentRoute.StudentStaffRoutes(teacher, db)
	enrollmentRoute.EnrollmentStaffRoutes(teacher, db)
	gradeRoute.GradeTeacherRoutes(teacher, db, emitter)

	log.Println("[INFO] Setting up STUDENT group...")
	student := app.Group("/api/s", authMiddleware.AuthMiddleware())
	semesterRoute.SemesterAllRoutes(student, db)
	gradeRoute.GradeStudentRoutes(student, db)

	log.Println("[INFO] Routes ready")
}
