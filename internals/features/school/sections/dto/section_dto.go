// file: internals/features/school/sections/dto/section_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/sections/model"
)

type SectionCreateDTO struct {
	SectionName       string `json:"section_name"        validate:"required,min=1,max=100"`
	SectionGradeLevel int    `json:"section_grade_level" validate:"required,min=1,max=12"`
}

type SectionUpdateDTO struct {
	SectionName       *string `json:"section_name,omitempty"        validate:"omitempty,min=1,max=100"`
	SectionGradeLevel *int    `json:"section_grade_level,omitempty" validate:"omitempty,min=1,max=12"`
}

type SectionResponseDTO struct {
	SectionID         uuid.UUID `json:"section_id"`
	SectionName       string    `json:"section_name"`
	SectionGradeLevel int       `json:"section_grade_level"`
	SectionCreatedAt  time.Time `json:"section_created_at"`
	SectionUpdatedAt  time.Time `json:"section_updated_at"`
}

func FromModel(m *model.SectionModel) SectionResponseDTO {
	return SectionResponseDTO{
		SectionID:         m.SectionID,
		SectionName:       m.SectionName,
		SectionGradeLevel: m.SectionGradeLevel,
		SectionCreatedAt:  m.SectionCreatedAt,
		SectionUpdatedAt:  m.SectionUpdatedAt,
	}
}

func FromModels(ms []model.SectionModel) []SectionResponseDTO {
	out := make([]SectionResponseDTO, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
