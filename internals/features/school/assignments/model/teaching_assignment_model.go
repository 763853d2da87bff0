// file: internals/features/school/assignments/model/teaching_assignment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Entity kinds an assignment can cover. A section assignment is an advisory
// role; a subject assignment is a teaching role.
const (
	EntitySection = "section"
	EntitySubject = "subject"
)

func ValidEntityType(t string) bool { return t == EntitySection || t == EntitySubject }

// TeachingAssignmentModel is a time-bounded grant of a role over an entity to
// one person. Ranges are half-open [start_at, end_at); a nil end_at means
// open-ended. For a fixed (entity, person) pair ranges never overlap.
type TeachingAssignmentModel struct {
	TeachingAssignmentID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:teaching_assignment_id" json:"teaching_assignment_id"`
	TeachingAssignmentEntityType string     `gorm:"type:text;not null;column:teaching_assignment_entity_type" json:"teaching_assignment_entity_type"`
	TeachingAssignmentEntityID   uuid.UUID  `gorm:"type:uuid;not null;column:teaching_assignment_entity_id" json:"teaching_assignment_entity_id"`
	TeachingAssignmentPersonID   uuid.UUID  `gorm:"type:uuid;not null;column:teaching_assignment_person_id" json:"teaching_assignment_person_id"`
	TeachingAssignmentStartAt    time.Time  `gorm:"type:timestamptz;not null;column:teaching_assignment_start_at" json:"teaching_assignment_start_at"`
	TeachingAssignmentEndAt      *time.Time `gorm:"type:timestamptz;column:teaching_assignment_end_at" json:"teaching_assignment_end_at,omitempty"`
	TeachingAssignmentCreatedBy  *uuid.UUID `gorm:"type:uuid;column:teaching_assignment_created_by" json:"teaching_assignment_created_by,omitempty"`
	TeachingAssignmentUpdatedBy  *uuid.UUID `gorm:"type:uuid;column:teaching_assignment_updated_by" json:"teaching_assignment_updated_by,omitempty"`
	TeachingAssignmentCreatedAt  time.Time  `gorm:"type:timestamptz;not null;autoCreateTime;column:teaching_assignment_created_at" json:"teaching_assignment_created_at"`
	TeachingAssignmentUpdatedAt  time.Time  `gorm:"type:timestamptz;not null;autoUpdateTime;column:teaching_assignment_updated_at" json:"teaching_assignment_updated_at"`
}

func (TeachingAssignmentModel) TableName() string { return "teaching_assignments" }

// Covers reports whether at falls inside the assignment's [start, end) range.
func (m *TeachingAssignmentModel) Covers(at time.Time) bool {
	if at.Before(m.TeachingAssignmentStartAt) {
		return false
	}
	if m.TeachingAssignmentEndAt == nil {
		return true
	}
	return at.Before(*m.TeachingAssignmentEndAt)
}

// Overlaps reports whether [start, end) intersects the assignment's range.
// A nil end is treated as +infinity on either side.
func (m *TeachingAssignmentModel) Overlaps(start time.Time, end *time.Time) bool {
	if end != nil && !m.TeachingAssignmentStartAt.Before(*end) {
		return false
	}
	if m.TeachingAssignmentEndAt != nil && !m.TeachingAssignmentEndAt.After(start) {
		return false
	}
	return true
}
