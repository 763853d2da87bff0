// file: internals/features/school/students/controller/student_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/students/dto"
	"schoolku_backend/internals/features/school/students/model"
	helper "schoolku_backend/internals/helpers"
)

type StudentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewStudentController(db *gorm.DB, v *validator.Validate) *StudentController {
	if v == nil {
		v = validator.New()
	}
	return &StudentController{DB: db, Validator: v}
}

func (ctl *StudentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	q := ctl.DB.Model(&model.StudentModel{})
	if term := strings.TrimSpace(c.Query("q")); term != "" {
		like := "%" + term + "%"
		q = q.Where("student_first_name ILIKE ? OR student_last_name ILIKE ? OR student_lrn ILIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch students")
	}

	var rows []model.StudentModel
	if err := q.
		Order("student_last_name ASC, student_first_name ASC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch students")
	}

	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Success", dto.FromModels(rows), &p)
}

func (ctl *StudentController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var m model.StudentModel
	if err := ctl.DB.First(&m, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}
	return helper.JsonOK(c, "Success", dto.FromModel(&m))
}

func (ctl *StudentController) Create(c *fiber.Ctx) error {
	var p dto.StudentCreateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		return err
	}

	adminID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	m := model.StudentModel{
		StudentID:        uuid.New(),
		StudentFirstName: p.StudentFirstName,
		StudentLastName:  p.StudentLastName,
		StudentLRN:       p.StudentLRN,
		StudentCreatedBy: &adminID,
	}
	if err := ctl.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create student")
	}
	return helper.JsonCreated(c, "Student created", dto.FromModel(&m))
}

func (ctl *StudentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var p dto.StudentUpdateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		return err
	}

	adminID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var m model.StudentModel
	if err := ctl.DB.First(&m, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	if p.StudentFirstName != nil {
		m.StudentFirstName = *p.StudentFirstName
	}
	if p.StudentLastName != nil {
		m.StudentLastName = *p.StudentLastName
	}
	if p.StudentLRN != nil {
		m.StudentLRN = p.StudentLRN
	}
	m.StudentUpdatedBy = &adminID

	if err := ctl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update student")
	}
	return helper.JsonUpdated(c, "Student updated", dto.FromModel(&m))
}
