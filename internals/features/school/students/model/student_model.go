// file: internals/features/school/students/model/student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type StudentModel struct {
	StudentID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_id" json:"student_id"`
	StudentFirstName string     `gorm:"type:text;not null;column:student_first_name" json:"student_first_name"`
	StudentLastName  string     `gorm:"type:text;not null;column:student_last_name" json:"student_last_name"`
	StudentLRN       *string    `gorm:"type:text;column:student_lrn" json:"student_lrn,omitempty"`
	StudentCreatedBy *uuid.UUID `gorm:"type:uuid;column:student_created_by" json:"student_created_by,omitempty"`
	StudentUpdatedBy *uuid.UUID `gorm:"type:uuid;column:student_updated_by" json:"student_updated_by,omitempty"`
	StudentCreatedAt time.Time  `gorm:"type:timestamptz;not null;autoCreateTime;column:student_created_at" json:"student_created_at"`
	StudentUpdatedAt time.Time  `gorm:"type:timestamptz;not null;autoUpdateTime;column:student_updated_at" json:"student_updated_at"`
}

func (StudentModel) TableName() string { return "students" }
