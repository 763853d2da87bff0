// file: internals/features/school/assignments/dto/assignment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/assignments/model"
)

// =======================
// Request DTO
// =======================

type AssignmentCreateDTO struct {
	TeachingAssignmentEntityType string     `json:"teaching_assignment_entity_type" validate:"required,oneof=section subject"`
	TeachingAssignmentEntityID   uuid.UUID  `json:"teaching_assignment_entity_id"   validate:"required"`
	TeachingAssignmentPersonID   uuid.UUID  `json:"teaching_assignment_person_id"   validate:"required"`
	TeachingAssignmentStartAt    time.Time  `json:"teaching_assignment_start_at"    validate:"required"`
	TeachingAssignmentEndAt      *time.Time `json:"teaching_assignment_end_at,omitempty"`
}

// =======================
// Response DTO
// =======================

type AssignmentResponseDTO struct {
	TeachingAssignmentID         uuid.UUID  `json:"teaching_assignment_id"`
	TeachingAssignmentEntityType string     `json:"teaching_assignment_entity_type"`
	TeachingAssignmentEntityID   uuid.UUID  `json:"teaching_assignment_entity_id"`
	TeachingAssignmentPersonID   uuid.UUID  `json:"teaching_assignment_person_id"`
	TeachingAssignmentStartAt    time.Time  `json:"teaching_assignment_start_at"`
	TeachingAssignmentEndAt      *time.Time `json:"teaching_assignment_end_at,omitempty"`
	TeachingAssignmentCreatedAt  time.Time  `json:"teaching_assignment_created_at"`
	TeachingAssignmentUpdatedAt  time.Time  `json:"teaching_assignment_updated_at"`
}

func FromModel(m *model.TeachingAssignmentModel) AssignmentResponseDTO {
	return AssignmentResponseDTO{
		TeachingAssignmentID:         m.TeachingAssignmentID,
		TeachingAssignmentEntityType: m.TeachingAssignmentEntityType,
		TeachingAssignmentEntityID:   m.TeachingAssignmentEntityID,
		TeachingAssignmentPersonID:   m.TeachingAssignmentPersonID,
		TeachingAssignmentStartAt:    m.TeachingAssignmentStartAt,
		TeachingAssignmentEndAt:      m.TeachingAssignmentEndAt,
		TeachingAssignmentCreatedAt:  m.TeachingAssignmentCreatedAt,
		TeachingAssignmentUpdatedAt:  m.TeachingAssignmentUpdatedAt,
	}
}

func FromModels(ms []model.TeachingAssignmentModel) []AssignmentResponseDTO {
	out := make([]AssignmentResponseDTO, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
