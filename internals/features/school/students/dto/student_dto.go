// file: internals/features/school/students/dto/student_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/students/model"
)

type StudentCreateDTO struct {
	StudentFirstName string  `json:"student_first_name" validate:"required,min=1,max=100"`
	StudentLastName  string  `json:"student_last_name"  validate:"required,min=1,max=100"`
	StudentLRN       *string `json:"student_lrn,omitempty" validate:"omitempty,len=12,numeric"`
}

type StudentUpdateDTO struct {
	StudentFirstName *string `json:"student_first_name,omitempty" validate:"omitempty,min=1,max=100"`
	StudentLastName  *string `json:"student_last_name,omitempty"  validate:"omitempty,min=1,max=100"`
	StudentLRN       *string `json:"student_lrn,omitempty"        validate:"omitempty,len=12,numeric"`
}

type StudentResponseDTO struct {
	StudentID        uuid.UUID `json:"student_id"`
	StudentFirstName string    `json:"student_first_name"`
	StudentLastName  string    `json:"student_last_name"`
	StudentLRN       *string   `json:"student_lrn,omitempty"`
	StudentCreatedAt time.Time `json:"student_created_at"`
	StudentUpdatedAt time.Time `json:"student_updated_at"`
}

func FromModel(m *model.StudentModel) StudentResponseDTO {
	return StudentResponseDTO{
		StudentID:        m.StudentID,
		StudentFirstName: m.StudentFirstName,
		StudentLastName:  m.StudentLastName,
		StudentLRN:       m.StudentLRN,
		StudentCreatedAt: m.StudentCreatedAt,
		StudentUpdatedAt: m.StudentUpdatedAt,
	}
}

func FromModels(ms []model.StudentModel) []StudentResponseDTO {
	out := make([]StudentResponseDTO, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
