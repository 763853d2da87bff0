// file: internals/features/school/sections/model/section_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// SectionModel is a homeroom container. Enrollment rows snapshot its name and
// grade level, so renaming a section never rewrites past enrollments.
type SectionModel struct {
	SectionID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:section_id" json:"section_id"`
	SectionName       string     `gorm:"type:text;not null;column:section_name" json:"section_name"`
	SectionGradeLevel int        `gorm:"type:integer;not null;column:section_grade_level" json:"section_grade_level"`
	SectionCreatedBy  *uuid.UUID `gorm:"type:uuid;column:section_created_by" json:"section_created_by,omitempty"`
	SectionUpdatedBy  *uuid.UUID `gorm:"type:uuid;column:section_updated_by" json:"section_updated_by,omitempty"`
	SectionCreatedAt  time.Time  `gorm:"type:timestamptz;not null;autoCreateTime;column:section_created_at" json:"section_created_at"`
	SectionUpdatedAt  time.Time  `gorm:"type:timestamptz;not null;autoUpdateTime;column:section_updated_at" json:"section_updated_at"`
}

func (SectionModel) TableName() string { return "sections" }
