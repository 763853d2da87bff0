// file: internals/features/school/semesters/controller/semester_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/semesters/dto"
	"schoolku_backend/internals/features/school/semesters/repository"
	"schoolku_backend/internals/features/school/semesters/service"
	helper "schoolku_backend/internals/helpers"
)

type SemesterController struct {
	Service   *service.Service
	Validator *validator.Validate
}

func NewSemesterController(db *gorm.DB, v *validator.Validate) *SemesterController {
	if v == nil {
		v = validator.New()
	}
	return &SemesterController{
		Service:   service.NewService(repository.NewSemesterRepository(db)),
		Validator: v,
	}
}

/* ============================================
   GET /semesters
============================================ */

func (ctl *SemesterController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)

	rows, total, err := ctl.Service.List(c.UserContext(), paging.Offset, paging.Limit)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Success", dto.FromModels(rows), &p)
}

/* ============================================
   GET /semesters/active
============================================ */

func (ctl *SemesterController) GetActive(c *fiber.Ctx) error {
	m, err := ctl.Service.GetActive(c.UserContext())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if m == nil {
		return helper.JsonOK(c, "No active semester", nil)
	}
	return helper.JsonOK(c, "Success", dto.FromModel(m))
}

/* ============================================
   GET /semesters/:id
============================================ */

func (ctl *SemesterController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid semester id")
	}

	m, err := ctl.Service.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Success", dto.FromModel(m))
}

/* ============================================
   POST /semesters (admin)
============================================ */

func (ctl *SemesterController) Create(c *fiber.Ctx) error {
	var p dto.SemesterCreateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		return err
	}

	adminID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	m, err := ctl.Service.Create(c.UserContext(), service.CreateInput{
		SyStartYear: p.SemesterSyStartYear,
		SyEndYear:   p.SemesterSyEndYear,
		Term:        p.SemesterTerm,
		Status:      p.SemesterStatus,
		CreatedBy:   adminID,
	})
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Semester created", dto.FromModel(m))
}

/* ============================================
   PATCH /semesters/:id (admin)
============================================ */

func (ctl *SemesterController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid semester id")
	}

	var p dto.SemesterUpdateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		return err
	}

	adminID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	m, err := ctl.Service.Update(c.UserContext(), id, service.UpdateInput{
		SyStartYear: p.SemesterSyStartYear,
		SyEndYear:   p.SemesterSyEndYear,
		Term:        p.SemesterTerm,
		Status:      p.SemesterStatus,
		UpdatedBy:   adminID,
	})
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Semester updated", dto.FromModel(m))
}
