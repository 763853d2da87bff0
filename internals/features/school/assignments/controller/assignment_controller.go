// file: internals/features/school/assignments/controller/assignment_controller.go
package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/assignments/dto"
	"schoolku_backend/internals/features/school/assignments/repository"
	"schoolku_backend/internals/features/school/assignments/service"
	helper "schoolku_backend/internals/helpers"
)

type AssignmentController struct {
	Service   *service.Service
	Validator *validator.Validate
}

func NewAssignmentController(db *gorm.DB, v *validator.Validate) *AssignmentController {
	if v == nil {
		v = validator.New()
	}
	return &AssignmentController{
		Service:   service.NewService(repository.NewAssignmentRepository(db)),
		Validator: v,
	}
}

/* ============================================
   GET /teaching-assignments?entity_id=...
============================================ */

func (ctl *AssignmentController) ListByEntity(c *fiber.Ctx) error {
	entityID, err := uuid.Parse(c.Query("entity_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid entity_id")
	}

	paging := helper.ResolvePaging(c, 10, 100)

	rows, total, err := ctl.Service.ListByEntity(c.UserContext(), entityID, paging.Offset, paging.Limit)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Success", dto.FromModels(rows), &p)
}

/* ============================================
   GET /teaching-assignments/:id
============================================ */

func (ctl *AssignmentController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assignment id")
	}

	m, err := ctl.Service.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Success", dto.FromModel(m))
}

/* ============================================
   GET /teaching-assignments/current
   (who holds the entity right now?)
============================================ */

func (ctl *AssignmentController) GetCurrent(c *fiber.Ctx) error {
	entityID, err := uuid.Parse(c.Query("entity_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid entity_id")
	}
	personID, err := uuid.Parse(c.Query("person_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid person_id")
	}

	m, err := ctl.Service.FindCurrent(c.UserContext(), entityID, personID, time.Now())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if m == nil {
		return helper.JsonOK(c, "No current assignment", nil)
	}
	return helper.JsonOK(c, "Success", dto.FromModel(m))
}

/* ============================================
   POST /teaching-assignments (admin)
============================================ */

func (ctl *AssignmentController) Create(c *fiber.Ctx) error {
	var p dto.AssignmentCreateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		return err
	}

	adminID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	m, err := ctl.Service.Assign(c.UserContext(), service.AssignInput{
		EntityType: p.TeachingAssignmentEntityType,
		EntityID:   p.TeachingAssignmentEntityID,
		PersonID:   p.TeachingAssignmentPersonID,
		StartAt:    p.TeachingAssignmentStartAt,
		EndAt:      p.TeachingAssignmentEndAt,
		ActorID:    adminID,
	})
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Assignment created", dto.FromModel(m))
}

/* ============================================
   PATCH /teaching-assignments/:id (admin)
============================================ */

func (ctl *AssignmentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assignment id")
	}

	var p dto.AssignmentCreateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		return err
	}

	adminID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	m, err := ctl.Service.Reassign(c.UserContext(), id, service.AssignInput{
		EntityType: p.TeachingAssignmentEntityType,
		EntityID:   p.TeachingAssignmentEntityID,
		PersonID:   p.TeachingAssignmentPersonID,
		StartAt:    p.TeachingAssignmentStartAt,
		EndAt:      p.TeachingAssignmentEndAt,
		ActorID:    adminID,
	})
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Assignment updated", dto.FromModel(m))
}
