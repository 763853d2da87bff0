// file: internals/features/school/grades/model/grade_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// GradeModel stores one student's mark inside a submission. The quarter the
// submission covers decides which of the two columns is filled.
type GradeModel struct {
	GradeID           uuid.UUID `gorm:"column:grade_id;type:uuid;primaryKey" json:"grade_id"`
	GradeSubmissionID uuid.UUID `gorm:"column:grade_submission_id;type:uuid;not null" json:"grade_submission_id"`
	GradeEnrollmentID uuid.UUID `gorm:"column:grade_enrollment_id;type:uuid;not null" json:"grade_enrollment_id"`

	GradeQuarter1 *int `gorm:"column:grade_quarter_1" json:"grade_quarter_1,omitempty"`
	GradeQuarter2 *int `gorm:"column:grade_quarter_2" json:"grade_quarter_2,omitempty"`

	GradeCreatedBy *uuid.UUID `gorm:"column:grade_created_by;type:uuid" json:"grade_created_by,omitempty"`
	GradeCreatedAt time.Time  `gorm:"column:grade_created_at;autoCreateTime" json:"grade_created_at"`
}

func (GradeModel) TableName() string { return "grades" }
