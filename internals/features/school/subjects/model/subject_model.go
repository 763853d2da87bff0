// file: internals/features/school/subjects/model/subject_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeCore        = "core"
	TypeApplied     = "applied"
	TypeSpecialized = "specialized"
)

func ValidSubjectType(t string) bool {
	return t == TypeCore || t == TypeApplied || t == TypeSpecialized
}

type SubjectModel struct {
	SubjectID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:subject_id" json:"subject_id"`
	SubjectName      string     `gorm:"type:text;not null;column:subject_name" json:"subject_name"`
	SubjectType      string     `gorm:"type:text;not null;column:subject_type" json:"subject_type"`
	SubjectCreatedBy *uuid.UUID `gorm:"type:uuid;column:subject_created_by" json:"subject_created_by,omitempty"`
	SubjectUpdatedBy *uuid.UUID `gorm:"type:uuid;column:subject_updated_by" json:"subject_updated_by,omitempty"`
	SubjectCreatedAt time.Time  `gorm:"type:timestamptz;not null;autoCreateTime;column:subject_created_at" json:"subject_created_at"`
	SubjectUpdatedAt time.Time  `gorm:"type:timestamptz;not null;autoUpdateTime;column:subject_updated_at" json:"subject_updated_at"`
}

func (SubjectModel) TableName() string { return "subjects" }
