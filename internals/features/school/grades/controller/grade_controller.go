// file: internals/features/school/grades/controller/grade_controller.go
package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/apperr"
	"schoolku_backend/internals/events"
	assignmentRepo "schoolku_backend/internals/features/school/assignments/repository"
	assignmentService "schoolku_backend/internals/features/school/assignments/service"
	enrollmentRepo "schoolku_backend/internals/features/school/enrollments/repository"
	enrollmentService "schoolku_backend/internals/features/school/enrollments/service"
	"schoolku_backend/internals/features/school/grades/dto"
	"schoolku_backend/internals/features/school/grades/repository"
	"schoolku_backend/internals/features/school/grades/service"
	semesterRepo "schoolku_backend/internals/features/school/semesters/repository"
	semesterService "schoolku_backend/internals/features/school/semesters/service"
	helper "schoolku_backend/internals/helpers"
)

type GradeController struct {
	Service   *service.Service
	Validator *validator.Validate
}

func NewGradeController(db *gorm.DB, v *validator.Validate, emitter *events.Emitter) *GradeController {
	if v == nil {
		v = validator.New()
	}
	semesters := semesterService.NewService(semesterRepo.NewSemesterRepository(db))
	assignments := assignmentService.NewService(assignmentRepo.NewAssignmentRepository(db))
	enrollments := enrollmentService.NewService(
		enrollmentRepo.NewEnrollmentRepository(db),
		semesterRepo.NewSemesterRepository(db),
		enrollmentRepo.NewGormContainerReader(db),
		assignments,
		enrollmentRepo.NewGormGradeChecker(db),
	)
	return &GradeController{
		Service: service.NewService(
			repository.NewGradeRepository(db, emitter),
			semesters,
			assignments,
			enrollments,
		),
		Validator: v,
	}
}

/* ============================================
   POST /grade-submissions (teacher)
============================================ */

func (ctl *GradeController) Submit(c *fiber.Ctx) error {
	var p dto.GradeSubmitDTO
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		return err
	}

	teacherID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	sub, err := ctl.Service.Submit(c.UserContext(), service.SubmitInput{
		SubjectID:  p.GradeSubmissionSubjectID,
		ReviewerID: p.GradeSubmissionReviewerID,
		Quarter:    p.GradeSubmissionQuarter,
		Entries:    toEntries(p.Grades),
		TeacherID:  teacherID,
	})
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Grades submitted", dto.FromSubmission(sub))
}

/* ============================================
   PUT /grade-submissions/:id/grades (teacher)
============================================ */

func (ctl *GradeController) Replace(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid submission id")
	}

	var p dto.GradeReplaceDTO
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		return err
	}

	teacherID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	sub, err := ctl.Service.Replace(c.UserContext(), id, teacherID, toEntries(p.Grades))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Grades replaced", dto.FromSubmission(sub))
}

/* ============================================
   GET /grade-submissions (teacher)
============================================ */

func (ctl *GradeController) ListMine(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 10, 100)

	rows, total, err := ctl.Service.TeacherSubmissions(c.UserContext(), teacherID, paging.Offset, paging.Limit)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Success", dto.FromSubmissions(rows), &p)
}

/* ============================================
   GET /grade-submissions/:id (teacher, reviewer)
============================================ */

func (ctl *GradeController) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid submission id")
	}

	viewerID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	sub, grades, err := ctl.Service.SubmissionDetail(c.UserContext(), id, viewerID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Success", dto.SubmissionDetailResponseDTO{
		Submission: dto.FromSubmission(sub),
		Grades:     dto.FromGrades(grades),
	})
}

/* ============================================
   GET /grade-submissions/review (reviewer inbox)
============================================ */

func (ctl *GradeController) ReviewInbox(c *fiber.Ctx) error {
	var q dto.ReviewFilterDTO
	if err := helper.BindQueryAndValidate(c, ctl.Validator, &q); err != nil {
		return err
	}

	reviewerID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	filter, err := toReviewFilter(q)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	paging := helper.ResolvePaging(c, 10, 100)

	rows, total, err := ctl.Service.ReviewerSubmissions(c.UserContext(), reviewerID, filter, paging.Offset, paging.Limit)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Success", dto.FromSubmissions(rows), &p)
}

/* ============================================
   PATCH /grade-submissions/:id/under-review (reviewer)
============================================ */

func (ctl *GradeController) MarkUnderReview(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid submission id")
	}

	reviewerID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	sub, err := ctl.Service.MarkUnderReview(c.UserContext(), id, reviewerID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Submission marked under review", dto.FromSubmission(sub))
}

/* ============================================
   PATCH /grade-submissions/:id/decision (reviewer)
============================================ */

func (ctl *GradeController) Decide(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid submission id")
	}

	var p dto.GradeDecisionDTO
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		return err
	}

	reviewerID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	sub, err := ctl.Service.Decide(c.UserContext(), id, reviewerID, p.Decision, p.Remark)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Submission "+p.Decision, dto.FromSubmission(sub))
}

/* ============================================
   GET /my-grades?semester_id= (student)
============================================ */

func (ctl *GradeController) MyGrades(c *fiber.Ctx) error {
	studentID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	semesterID, err := uuid.Parse(c.Query("semester_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid semester_id")
	}

	cards, err := ctl.Service.StudentGrades(c.UserContext(), studentID, semesterID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Success", cards)
}

/* ============================================
   Internals
============================================ */

func toEntries(in []dto.GradeEntryDTO) []service.GradeEntry {
	out := make([]service.GradeEntry, 0, len(in))
	for _, e := range in {
		out = append(out, service.GradeEntry{StudentID: e.StudentID, Grade: e.Grade})
	}
	return out
}

func toReviewFilter(q dto.ReviewFilterDTO) (service.ReviewFilter, error) {
	var f service.ReviewFilter
	f.Status = q.Status
	if q.TeacherID != nil {
		id, err := uuid.Parse(*q.TeacherID)
		if err != nil {
			return f, apperr.NewValidation("teacher_id is not a valid uuid")
		}
		f.TeacherID = &id
	}
	if q.SubmittedFrom != nil {
		t, err := time.Parse(time.RFC3339, *q.SubmittedFrom)
		if err != nil {
			return f, apperr.NewValidation("submitted_from must be RFC3339")
		}
		f.SubmittedFrom = &t
	}
	if q.SubmittedTo != nil {
		t, err := time.Parse(time.RFC3339, *q.SubmittedTo)
		if err != nil {
			return f, apperr.NewValidation("submitted_to must be RFC3339")
		}
		f.SubmittedTo = &t
	}
	return f, nil
}
