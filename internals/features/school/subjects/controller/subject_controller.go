// file: internals/features/school/subjects/controller/subject_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/subjects/dto"
	"schoolku_backend/internals/features/school/subjects/model"
	helper "schoolku_backend/internals/helpers"
)

type SubjectController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewSubjectController(db *gorm.DB, v *validator.Validate) *SubjectController {
	if v == nil {
		v = validator.New()
	}
	return &SubjectController{DB: db, Validator: v}
}

func (ctl *SubjectController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	q := ctl.DB.Model(&model.SubjectModel{})
	if t := c.Query("type"); t != "" {
		if !model.ValidSubjectType(t) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subject type filter")
		}
		q = q.Where("subject_type = ?", t)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch subjects")
	}

	var rows []model.SubjectModel
	if err := q.
		Order("subject_name ASC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch subjects")
	}

	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Success", dto.FromModels(rows), &p)
}

func (ctl *SubjectController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subject id")
	}

	var m model.SubjectModel
	if err := ctl.DB.First(&m, "subject_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Subject not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch subject")
	}
	return helper.JsonOK(c, "Success", dto.FromModel(&m))
}

func (ctl *SubjectController) Create(c *fiber.Ctx) error {
	var p dto.SubjectCreateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		return err
	}

	adminID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	m := model.SubjectModel{
		SubjectID:        uuid.New(),
		SubjectName:      p.SubjectName,
		SubjectType:      p.SubjectType,
		SubjectCreatedBy: &adminID,
	}
	if err := ctl.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create subject")
	}
	return helper.JsonCreated(c, "Subject created", dto.FromModel(&m))
}

func (ctl *SubjectController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subject id")
	}

	var p dto.SubjectUpdateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		return err
	}

	adminID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var m model.SubjectModel
	if err := ctl.DB.First(&m, "subject_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Subject not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch subject")
	}

	if p.SubjectName != nil {
		m.SubjectName = *p.SubjectName
	}
	if p.SubjectType != nil {
		m.SubjectType = *p.SubjectType
	}
	m.SubjectUpdatedBy = &adminID

	if err := ctl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update subject")
	}
	return helper.JsonUpdated(c, "Subject updated", dto.FromModel(&m))
}
