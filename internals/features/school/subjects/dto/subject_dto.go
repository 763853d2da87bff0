// file: internals/features/school/subjects/dto/subject_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/subjects/model"
)

type SubjectCreateDTO struct {
	SubjectName string `json:"subject_name" validate:"required,min=1,max=150"`
	SubjectType string `json:"subject_type" validate:"required,oneof=core applied specialized"`
}

type SubjectUpdateDTO struct {
	SubjectName *string `json:"subject_name,omitempty" validate:"omitempty,min=1,max=150"`
	SubjectType *string `json:"subject_type,omitempty" validate:"omitempty,oneof=core applied specialized"`
}

type SubjectResponseDTO struct {
	SubjectID        uuid.UUID `json:"subject_id"`
	SubjectName      string    `json:"subject_name"`
	SubjectType      string    `json:"subject_type"`
	SubjectCreatedAt time.Time `json:"subject_created_at"`
	SubjectUpdatedAt time.Time `json:"subject_updated_at"`
}

func FromModel(m *model.SubjectModel) SubjectResponseDTO {
	return SubjectResponseDTO{
		SubjectID:        m.SubjectID,
		SubjectName:      m.SubjectName,
		SubjectType:      m.SubjectType,
		SubjectCreatedAt: m.SubjectCreatedAt,
		SubjectUpdatedAt: m.SubjectUpdatedAt,
	}
}

func FromModels(ms []model.SubjectModel) []SubjectResponseDTO {
	out := make([]SubjectResponseDTO, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
