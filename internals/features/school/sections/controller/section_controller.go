// file: internals/features/school/sections/controller/section_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/sections/dto"
	"schoolku_backend/internals/features/school/sections/model"
	helper "schoolku_backend/internals/helpers"
)

type SectionController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewSectionController(db *gorm.DB, v *validator.Validate) *SectionController {
	if v == nil {
		v = validator.New()
	}
	return &SectionController{DB: db, Validator: v}
}

func (ctl *SectionController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	q := ctl.DB.Model(&model.SectionModel{})
	if lvl := c.QueryInt("grade_level", 0); lvl > 0 {
		q = q.Where("section_grade_level = ?", lvl)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch sections")
	}

	var rows []model.SectionModel
	if err := q.
		Order("section_grade_level ASC, section_name ASC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch sections")
	}

	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Success", dto.FromModels(rows), &p)
}

func (ctl *SectionController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid section id")
	}

	var m model.SectionModel
	if err := ctl.DB.First(&m, "section_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Section not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch section")
	}
	return helper.JsonOK(c, "Success", dto.FromModel(&m))
}

func (ctl *SectionController) Create(c *fiber.Ctx) error {
	var p dto.SectionCreateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		return err
	}

	adminID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	m := model.SectionModel{
		SectionID:         uuid.New(),
		SectionName:       p.SectionName,
		SectionGradeLevel: p.SectionGradeLevel,
		SectionCreatedBy:  &adminID,
	}
	if err := ctl.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create section")
	}
	return helper.JsonCreated(c, "Section created", dto.FromModel(&m))
}

func (ctl *SectionController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid section id")
	}

	var p dto.SectionUpdateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		return err
	}

	adminID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var m model.SectionModel
	if err := ctl.DB.First(&m, "section_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Section not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch section")
	}

	if p.SectionName != nil {
		m.SectionName = *p.SectionName
	}
	if p.SectionGradeLevel != nil {
		m.SectionGradeLevel = *p.SectionGradeLevel
	}
	m.SectionUpdatedBy = &adminID

	if err := ctl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update section")
	}
	return helper.JsonUpdated(c, "Section updated", dto.FromModel(&m))
}
