// file: internals/features/school/semesters/model/semester_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Semester status values. Statuses are assigned directly by an administrator;
// the only guarded rule is that at most one semester is active at a time.
const (
	StatusUpcoming = "upcoming"
	StatusActive   = "active"
	StatusEnded    = "ended"
)

const (
	TermFirst  = 1
	TermSecond = 2
)

func ValidStatus(s string) bool {
	switch s {
	case StatusUpcoming, StatusActive, StatusEnded:
		return true
	}
	return false
}

func ValidTerm(t int) bool { return t == TermFirst || t == TermSecond }

type SemesterModel struct {
	SemesterID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:semester_id" json:"semester_id"`
	SemesterSyStartYear int        `gorm:"type:integer;not null;column:semester_sy_start_year" json:"semester_sy_start_year"`
	SemesterSyEndYear   int        `gorm:"type:integer;not null;column:semester_sy_end_year" json:"semester_sy_end_year"`
	SemesterTerm        int        `gorm:"type:smallint;not null;column:semester_term" json:"semester_term"`
	SemesterStatus      string     `gorm:"type:text;not null;column:semester_status" json:"semester_status"`
	SemesterCreatedBy   *uuid.UUID `gorm:"type:uuid;column:semester_created_by" json:"semester_created_by,omitempty"`
	SemesterUpdatedBy   *uuid.UUID `gorm:"type:uuid;column:semester_updated_by" json:"semester_updated_by,omitempty"`
	SemesterCreatedAt   time.Time  `gorm:"type:timestamptz;not null;autoCreateTime;column:semester_created_at" json:"semester_created_at"`
	SemesterUpdatedAt   time.Time  `gorm:"type:timestamptz;not null;autoUpdateTime;column:semester_updated_at" json:"semester_updated_at"`
}

func (SemesterModel) TableName() string { return "semesters" }

func (m *SemesterModel) IsActive() bool { return m.SemesterStatus == StatusActive }
