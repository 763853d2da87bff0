// file: internals/features/school/enrollments/model/enrollment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ContainerSection = "section"
	ContainerSubject = "subject"
)

func ValidContainerType(t string) bool {
	return t == ContainerSection || t == ContainerSubject
}

// EnrollmentModel is a membership fact frozen at enroll time. The snapshot
// columns are copied from the container and semester when the row is written
// and are never touched again, so later renames cannot rewrite history.
type EnrollmentModel struct {
	EnrollmentID            uuid.UUID `gorm:"column:enrollment_id;type:uuid;primaryKey" json:"enrollment_id"`
	EnrollmentContainerType string    `gorm:"column:enrollment_container_type;type:text;not null" json:"enrollment_container_type"`
	EnrollmentContainerID   uuid.UUID `gorm:"column:enrollment_container_id;type:uuid;not null" json:"enrollment_container_id"`
	EnrollmentSemesterID    uuid.UUID `gorm:"column:enrollment_semester_id;type:uuid;not null" json:"enrollment_semester_id"`
	EnrollmentStudentID     uuid.UUID `gorm:"column:enrollment_student_id;type:uuid;not null" json:"enrollment_student_id"`

	EnrollmentContainerNameSnapshot   string `gorm:"column:enrollment_container_name_snapshot;type:text;not null" json:"enrollment_container_name_snapshot"`
	EnrollmentContainerDetailSnapshot string `gorm:"column:enrollment_container_detail_snapshot;type:text;not null" json:"enrollment_container_detail_snapshot"`
	EnrollmentSyStartSnapshot         int    `gorm:"column:enrollment_sy_start_snapshot;not null" json:"enrollment_sy_start_snapshot"`
	EnrollmentSyEndSnapshot           int    `gorm:"column:enrollment_sy_end_snapshot;not null" json:"enrollment_sy_end_snapshot"`
	EnrollmentTermSnapshot            int    `gorm:"column:enrollment_term_snapshot;not null" json:"enrollment_term_snapshot"`

	EnrollmentCreatedBy *uuid.UUID `gorm:"column:enrollment_created_by;type:uuid" json:"enrollment_created_by,omitempty"`
	EnrollmentCreatedAt time.Time  `gorm:"column:enrollment_created_at;autoCreateTime" json:"enrollment_created_at"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }
