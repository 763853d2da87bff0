// file: internals/features/school/grades/model/grade_submission_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Submission statuses. pending and under_review are live, approved and
// rejected are terminal. Only a rejected submission frees its slot for
// resubmission.
const (
	StatusPending     = "pending"
	StatusUnderReview = "under_review"
	StatusApproved    = "approved"
	StatusRejected    = "rejected"
)

func ValidQuarter(q int) bool { return q == 1 || q == 2 }

type GradeSubmissionModel struct {
	GradeSubmissionID         uuid.UUID `gorm:"column:grade_submission_id;type:uuid;primaryKey" json:"grade_submission_id"`
	GradeSubmissionReviewerID uuid.UUID `gorm:"column:grade_submission_reviewer_id;type:uuid;not null" json:"grade_submission_reviewer_id"`
	GradeSubmissionSemesterID uuid.UUID `gorm:"column:grade_submission_semester_id;type:uuid;not null" json:"grade_submission_semester_id"`
	GradeSubmissionSubjectID  uuid.UUID `gorm:"column:grade_submission_subject_id;type:uuid;not null" json:"grade_submission_subject_id"`
	GradeSubmissionTeacherID  uuid.UUID `gorm:"column:grade_submission_teacher_id;type:uuid;not null" json:"grade_submission_teacher_id"`
	GradeSubmissionQuarter    int       `gorm:"column:grade_submission_quarter;not null" json:"grade_submission_quarter"`
	GradeSubmissionStatus     string    `gorm:"column:grade_submission_status;type:text;not null" json:"grade_submission_status"`

	GradeSubmissionSubmittedAt         time.Time  `gorm:"column:grade_submission_submitted_at;not null" json:"grade_submission_submitted_at"`
	GradeSubmissionMarkedUnderReviewAt *time.Time `gorm:"column:grade_submission_marked_under_review_at" json:"grade_submission_marked_under_review_at,omitempty"`
	GradeSubmissionMarkedApprovedAt    *time.Time `gorm:"column:grade_submission_marked_approved_at" json:"grade_submission_marked_approved_at,omitempty"`
	GradeSubmissionMarkedRejectedAt    *time.Time `gorm:"column:grade_submission_marked_rejected_at" json:"grade_submission_marked_rejected_at,omitempty"`
	GradeSubmissionRemark              *string    `gorm:"column:grade_submission_remark;type:text" json:"grade_submission_remark,omitempty"`

	GradeSubmissionCreatedBy *uuid.UUID `gorm:"column:grade_submission_created_by;type:uuid" json:"grade_submission_created_by,omitempty"`
	GradeSubmissionUpdatedBy *uuid.UUID `gorm:"column:grade_submission_updated_by;type:uuid" json:"grade_submission_updated_by,omitempty"`
	GradeSubmissionCreatedAt time.Time  `gorm:"column:grade_submission_created_at;autoCreateTime" json:"grade_submission_created_at"`
	GradeSubmissionUpdatedAt time.Time  `gorm:"column:grade_submission_updated_at;autoUpdateTime" json:"grade_submission_updated_at"`
}

func (GradeSubmissionModel) TableName() string { return "grade_submissions" }

func (m *GradeSubmissionModel) IsLive() bool {
	return m.GradeSubmissionStatus == StatusPending || m.GradeSubmissionStatus == StatusUnderReview
}
