// file: internals/features/school/enrollments/dto/enrollment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/enrollments/model"
)

// =======================
// Request DTO
// =======================

type EnrollManyDTO struct {
	EnrollmentContainerType string      `json:"enrollment_container_type" validate:"required,oneof=section subject"`
	EnrollmentContainerID   uuid.UUID   `json:"enrollment_container_id"   validate:"required"`
	EnrollmentSemesterID    uuid.UUID   `json:"enrollment_semester_id"    validate:"required"`
	EnrollmentStudentIDs    []uuid.UUID `json:"enrollment_student_ids"    validate:"required,min=1,dive,required"`
}

// =======================
// Response DTO
// =======================

type EnrollmentResponseDTO struct {
	EnrollmentID            uuid.UUID `json:"enrollment_id"`
	EnrollmentContainerType string    `json:"enrollment_container_type"`
	EnrollmentContainerID   uuid.UUID `json:"enrollment_container_id"`
	EnrollmentSemesterID    uuid.UUID `json:"enrollment_semester_id"`
	EnrollmentStudentID     uuid.UUID `json:"enrollment_student_id"`

	EnrollmentContainerNameSnapshot   string `json:"enrollment_container_name_snapshot"`
	EnrollmentContainerDetailSnapshot string `json:"enrollment_container_detail_snapshot"`
	EnrollmentSyStartSnapshot         int    `json:"enrollment_sy_start_snapshot"`
	EnrollmentSyEndSnapshot           int    `json:"enrollment_sy_end_snapshot"`
	EnrollmentTermSnapshot            int    `json:"enrollment_term_snapshot"`

	EnrollmentCreatedAt time.Time `json:"enrollment_created_at"`
}

func FromModel(m *model.EnrollmentModel) EnrollmentResponseDTO {
	return EnrollmentResponseDTO{
		EnrollmentID:            m.EnrollmentID,
		EnrollmentContainerType: m.EnrollmentContainerType,
		EnrollmentContainerID:   m.EnrollmentContainerID,
		EnrollmentSemesterID:    m.EnrollmentSemesterID,
		EnrollmentStudentID:     m.EnrollmentStudentID,

		EnrollmentContainerNameSnapshot:   m.EnrollmentContainerNameSnapshot,
		EnrollmentContainerDetailSnapshot: m.EnrollmentContainerDetailSnapshot,
		EnrollmentSyStartSnapshot:         m.EnrollmentSyStartSnapshot,
		EnrollmentSyEndSnapshot:           m.EnrollmentSyEndSnapshot,
		EnrollmentTermSnapshot:            m.EnrollmentTermSnapshot,

		EnrollmentCreatedAt: m.EnrollmentCreatedAt,
	}
}

func FromModels(ms []model.EnrollmentModel) []EnrollmentResponseDTO {
	out := make([]EnrollmentResponseDTO, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
