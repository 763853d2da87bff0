// file: internals/features/school/semesters/dto/semester_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/semesters/model"
)

// =======================
// Request DTO
// =======================

type SemesterCreateDTO struct {
	SemesterSyStartYear int    `json:"semester_sy_start_year" validate:"required,min=1900"`
	SemesterSyEndYear   int    `json:"semester_sy_end_year"   validate:"required,min=1900"`
	SemesterTerm        int    `json:"semester_term"          validate:"required,oneof=1 2"`
	SemesterStatus      string `json:"semester_status"        validate:"required,oneof=upcoming active ended"`
}

type SemesterUpdateDTO struct {
	SemesterSyStartYear int    `json:"semester_sy_start_year" validate:"required,min=1900"`
	SemesterSyEndYear   int    `json:"semester_sy_end_year"   validate:"required,min=1900"`
	SemesterTerm        int    `json:"semester_term"          validate:"required,oneof=1 2"`
	SemesterStatus      string `json:"semester_status"        validate:"required,oneof=upcoming active ended"`
}

// =======================
// Response DTO
// =======================

type SemesterResponseDTO struct {
	SemesterID          uuid.UUID `json:"semester_id"`
	SemesterSyStartYear int       `json:"semester_sy_start_year"`
	SemesterSyEndYear   int       `json:"semester_sy_end_year"`
	SemesterTerm        int       `json:"semester_term"`
	SemesterStatus      string    `json:"semester_status"`
	SemesterCreatedAt   time.Time `json:"semester_created_at"`
	SemesterUpdatedAt   time.Time `json:"semester_updated_at"`
}

func FromModel(m *model.SemesterModel) SemesterResponseDTO {
	return SemesterResponseDTO{
		SemesterID:          m.SemesterID,
		SemesterSyStartYear: m.SemesterSyStartYear,
		SemesterSyEndYear:   m.SemesterSyEndYear,
		SemesterTerm:        m.SemesterTerm,
		SemesterStatus:      m.SemesterStatus,
		SemesterCreatedAt:   m.SemesterCreatedAt,
		SemesterUpdatedAt:   m.SemesterUpdatedAt,
	}
}

func FromModels(ms []model.SemesterModel) []SemesterResponseDTO {
	out := make([]SemesterResponseDTO, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
