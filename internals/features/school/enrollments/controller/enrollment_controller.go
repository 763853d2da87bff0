// file: internals/features/school/enrollments/controller/enrollment_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	assignmentRepo "schoolku_backend/internals/features/school/assignments/repository"
	assignmentService "schoolku_backend/internals/features/school/assignments/service"
	"schoolku_backend/internals/features/school/enrollments/dto"
	"schoolku_backend/internals/features/school/enrollments/repository"
	"schoolku_backend/internals/features/school/enrollments/service"
	semesterRepo "schoolku_backend/internals/features/school/semesters/repository"
	helper "schoolku_backend/internals/helpers"
)

type EnrollmentController struct {
	Service   *service.Service
	Validator *validator.Validate
}

func NewEnrollmentController(db *gorm.DB, v *validator.Validate) *EnrollmentController {
	if v == nil {
		v = validator.New()
	}
	return &EnrollmentController{
		Service: service.NewService(
			repository.NewEnrollmentRepository(db),
			semesterRepo.NewSemesterRepository(db),
			repository.NewGormContainerReader(db),
			assignmentService.NewService(assignmentRepo.NewAssignmentRepository(db)),
			repository.NewGormGradeChecker(db),
		),
		Validator: v,
	}
}

func actorFromCtx(c *fiber.Ctx) (service.Actor, error) {
	id, err := helper.GetUserUUID(c)
	if err != nil {
		return service.Actor{}, err
	}
	role, err := helper.GetUserRole(c)
	if err != nil {
		return service.Actor{}, err
	}
	return service.Actor{
		ID:      id,
		Role:    role,
		IsAdmin: role == constants.RoleAdmin,
	}, nil
}

/* ============================================
   POST /enrollments (admin, teacher)
============================================ */

func (ctl *EnrollmentController) EnrollMany(c *fiber.Ctx) error {
	var p dto.EnrollManyDTO
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		return err
	}

	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	rows, err := ctl.Service.EnrollMany(c.UserContext(), service.EnrollInput{
		ContainerType: p.EnrollmentContainerType,
		ContainerID:   p.EnrollmentContainerID,
		SemesterID:    p.EnrollmentSemesterID,
		StudentIDs:    p.EnrollmentStudentIDs,
		Actor:         actor,
	})
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Students enrolled", dto.FromModels(rows))
}

/* ============================================
   DELETE /enrollments/:id (admin, teacher)
============================================ */

func (ctl *EnrollmentController) Unenroll(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid enrollment id")
	}

	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	if err := ctl.Service.Unenroll(c.UserContext(), id, actor); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "Enrollment removed", fiber.Map{"enrollment_id": id})
}

/* ============================================
   GET /enrollments?container_id=&semester_id=
============================================ */

func (ctl *EnrollmentController) ListByContainer(c *fiber.Ctx) error {
	containerID, err := uuid.Parse(c.Query("container_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid container_id")
	}
	semesterID, err := uuid.Parse(c.Query("semester_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid semester_id")
	}

	paging := helper.ResolvePaging(c, 25, 200)

	rows, total, err := ctl.Service.ListByContainerAndSemester(c.UserContext(), containerID, semesterID, paging.Offset, paging.Limit)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Success", dto.FromModels(rows), &p)
}

/* ============================================
   GET /enrollments/student/:studentId?semester_id=
============================================ */

func (ctl *EnrollmentController) ListByStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}
	semesterID, err := uuid.Parse(c.Query("semester_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid semester_id")
	}

	rows, err := ctl.Service.ListByStudentAndSemester(c.UserContext(), studentID, semesterID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Success", dto.FromModels(rows))
}
