// file: internals/features/school/grades/dto/grade_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/grades/model"
)

// =======================
// Request DTO
// =======================

type GradeEntryDTO struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Grade     int       `json:"grade"      validate:"min=0,max=100"`
}

type GradeSubmitDTO struct {
	GradeSubmissionSubjectID  uuid.UUID       `json:"grade_submission_subject_id"  validate:"required"`
	GradeSubmissionReviewerID uuid.UUID       `json:"grade_submission_reviewer_id" validate:"required"`
	GradeSubmissionQuarter    int             `json:"grade_submission_quarter"     validate:"required,oneof=1 2"`
	Grades                    []GradeEntryDTO `json:"grades"                       validate:"required,min=1,dive"`
}

type GradeReplaceDTO struct {
	Grades []GradeEntryDTO `json:"grades" validate:"required,min=1,dive"`
}

type GradeDecisionDTO struct {
	Decision string  `json:"decision" validate:"required,oneof=approved rejected"`
	Remark   *string `json:"remark,omitempty" validate:"omitempty,max=500"`
}

type ReviewFilterDTO struct {
	Status        *string `query:"status"         validate:"omitempty,oneof=pending under_review approved rejected"`
	TeacherID     *string `query:"teacher_id"     validate:"omitempty,uuid4"`
	SubmittedFrom *string `query:"submitted_from" validate:"omitempty"`
	SubmittedTo   *string `query:"submitted_to"   validate:"omitempty"`
}

// =======================
// Response DTO
// =======================

type SubmissionResponseDTO struct {
	GradeSubmissionID         uuid.UUID `json:"grade_submission_id"`
	GradeSubmissionReviewerID uuid.UUID `json:"grade_submission_reviewer_id"`
	GradeSubmissionSemesterID uuid.UUID `json:"grade_submission_semester_id"`
	GradeSubmissionSubjectID  uuid.UUID `json:"grade_submission_subject_id"`
	GradeSubmissionTeacherID  uuid.UUID `json:"grade_submission_teacher_id"`
	GradeSubmissionQuarter    int       `json:"grade_submission_quarter"`
	GradeSubmissionStatus     string    `json:"grade_submission_status"`

	GradeSubmissionSubmittedAt         time.Time  `json:"grade_submission_submitted_at"`
	GradeSubmissionMarkedUnderReviewAt *time.Time `json:"grade_submission_marked_under_review_at,omitempty"`
	GradeSubmissionMarkedApprovedAt    *time.Time `json:"grade_submission_marked_approved_at,omitempty"`
	GradeSubmissionMarkedRejectedAt    *time.Time `json:"grade_submission_marked_rejected_at,omitempty"`
	GradeSubmissionRemark              *string    `json:"grade_submission_remark,omitempty"`
}

func FromSubmission(m *model.GradeSubmissionModel) SubmissionResponseDTO {
	return SubmissionResponseDTO{
		GradeSubmissionID:         m.GradeSubmissionID,
		GradeSubmissionReviewerID: m.GradeSubmissionReviewerID,
		GradeSubmissionSemesterID: m.GradeSubmissionSemesterID,
		GradeSubmissionSubjectID:  m.GradeSubmissionSubjectID,
		GradeSubmissionTeacherID:  m.GradeSubmissionTeacherID,
		GradeSubmissionQuarter:    m.GradeSubmissionQuarter,
		GradeSubmissionStatus:     m.GradeSubmissionStatus,

		GradeSubmissionSubmittedAt:         m.GradeSubmissionSubmittedAt,
		GradeSubmissionMarkedUnderReviewAt: m.GradeSubmissionMarkedUnderReviewAt,
		GradeSubmissionMarkedApprovedAt:    m.GradeSubmissionMarkedApprovedAt,
		GradeSubmissionMarkedRejectedAt:    m.GradeSubmissionMarkedRejectedAt,
		GradeSubmissionRemark:              m.GradeSubmissionRemark,
	}
}

func FromSubmissions(ms []model.GradeSubmissionModel) []SubmissionResponseDTO {
	out := make([]SubmissionResponseDTO, 0, len(ms))
	for i := range ms {
		out = append(out, FromSubmission(&ms[i]))
	}
	return out
}

type GradeRowResponseDTO struct {
	GradeID           uuid.UUID `json:"grade_id"`
	GradeSubmissionID uuid.UUID `json:"grade_submission_id"`
	GradeEnrollmentID uuid.UUID `json:"grade_enrollment_id"`
	GradeQuarter1     *int      `json:"grade_quarter_1,omitempty"`
	GradeQuarter2     *int      `json:"grade_quarter_2,omitempty"`
}

func FromGrades(ms []model.GradeModel) []GradeRowResponseDTO {
	out := make([]GradeRowResponseDTO, 0, len(ms))
	for i := range ms {
		out = append(out, GradeRowResponseDTO{
			GradeID:           ms[i].GradeID,
			GradeSubmissionID: ms[i].GradeSubmissionID,
			GradeEnrollmentID: ms[i].GradeEnrollmentID,
			GradeQuarter1:     ms[i].GradeQuarter1,
			GradeQuarter2:     ms[i].GradeQuarter2,
		})
	}
	return out
}

type SubmissionDetailResponseDTO struct {
	Submission SubmissionResponseDTO `json:"submission"`
	Grades     []GradeRowResponseDTO `json:"grades"`
}
