// file: internals/features/school/grades/service/grade_service.go
package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/apperr"
	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/events"
	enrollmentModel "schoolku_backend/internals/features/school/enrollments/model"
	enrollmentService "schoolku_backend/internals/features/school/enrollments/service"
	"schoolku_backend/internals/features/school/grades/model"
	semesterModel "schoolku_backend/internals/features/school/semesters/model"
)

// PassingGrade is the cutoff applied to the final average.
const PassingGrade = 75

const (
	RemarkPassed = "PASSED"
	RemarkFailed = "FAILED"
)

/* ============================================
   Dependencies
============================================ */

type StatusChange struct {
	To      string
	At      time.Time
	Remark  *string
	ActorID uuid.UUID
}

// ReviewFilter narrows the reviewer inbox.
type ReviewFilter struct {
	Status        *string
	TeacherID     *uuid.UUID
	SubmittedFrom *time.Time
	SubmittedTo   *time.Time
}

// StudentGradeRow is one (subject, quarter, mark) fact read from approved
// submissions.
type StudentGradeRow struct {
	SubjectID   uuid.UUID
	SubjectName string
	Quarter     int
	Grade       int
}

type Store interface {
	// CreateSubmission persists the submission, its grade rows, and the
	// outbox event in one transaction. A live submission already occupying
	// the (teacher, subject, semester, quarter) slot fails with an apperr
	// conflict.
	CreateSubmission(ctx context.Context, sub *model.GradeSubmissionModel, grades []model.GradeModel, evt events.Event) error
	GetSubmission(ctx context.Context, id uuid.UUID) (*model.GradeSubmissionModel, error)
	// TransitionStatus moves the submission from one of the from statuses to
	// ch.To, recording evt (when non-nil) in the same transaction. A row no
	// longer in a from status fails with an apperr state error.
	TransitionStatus(ctx context.Context, id uuid.UUID, from []string, ch StatusChange, evt *events.Event) error
	// ReplaceGrades swaps all grade rows of the submission, guarded on the
	// submission still holding ifStatus.
	ReplaceGrades(ctx context.Context, submissionID uuid.UUID, ifStatus string, grades []model.GradeModel) error
	ListGradesBySubmission(ctx context.Context, submissionID uuid.UUID) ([]model.GradeModel, error)
	ListByTeacher(ctx context.Context, teacherID uuid.UUID, offset, limit int) ([]model.GradeSubmissionModel, int64, error)
	ListForReviewer(ctx context.Context, reviewerID uuid.UUID, f ReviewFilter, offset, limit int) ([]model.GradeSubmissionModel, int64, error)
	ListApprovedGradesForStudent(ctx context.Context, studentID, semesterID uuid.UUID) ([]StudentGradeRow, error)
}

type ActiveSemesterSource interface {
	RequireActive(ctx context.Context) (*semesterModel.SemesterModel, error)
}

type AssignmentChecker interface {
	HasCurrentAssignment(ctx context.Context, entityID, personID uuid.UUID, at time.Time) (bool, error)
}

type Enroller interface {
	EnsureEnrolled(ctx context.Context, in enrollmentService.EnrollInput) (map[uuid.UUID]uuid.UUID, error)
}

type Service struct {
	store       Store
	semesters   ActiveSemesterSource
	assignments AssignmentChecker
	enroller    Enroller
}

func NewService(store Store, sem ActiveSemesterSource, asg AssignmentChecker, enr Enroller) *Service {
	return &Service{
		store:       store,
		semesters:   sem,
		assignments: asg,
		enroller:    enr,
	}
}

/* ============================================
   Submit
============================================ */

type GradeEntry struct {
	StudentID uuid.UUID
	Grade     int
}

type SubmitInput struct {
	SubjectID  uuid.UUID
	ReviewerID uuid.UUID
	Quarter    int
	Entries    []GradeEntry
	TeacherID  uuid.UUID
}

func (in *SubmitInput) validate() error {
	if in.SubjectID == uuid.Nil || in.ReviewerID == uuid.Nil {
		return apperr.NewValidation("subject_id and reviewer_id are required")
	}
	if !model.ValidQuarter(in.Quarter) {
		return apperr.NewValidation("quarter must be 1 or 2")
	}
	if len(in.Entries) == 0 {
		return apperr.NewValidation("grades must not be empty")
	}
	seen := make(map[uuid.UUID]struct{}, len(in.Entries))
	for _, e := range in.Entries {
		if e.StudentID == uuid.Nil {
			return apperr.NewValidation("every grade entry needs a student_id")
		}
		if _, dup := seen[e.StudentID]; dup {
			return apperr.NewValidation("a student appears more than once")
		}
		seen[e.StudentID] = struct{}{}
		if e.Grade < 0 || e.Grade > 100 {
			return apperr.NewValidation("grades must be between 0 and 100")
		}
	}
	return nil
}

// Submit files the teacher's marks for one subject and quarter. Students not
// yet enrolled in the subject are enrolled on the fly; the submission, its
// grade rows, and the notification event land in a single transaction.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*model.GradeSubmissionModel, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	sem, err := s.semesters.RequireActive(ctx)
	if err != nil {
		return nil, err
	}

	ok, err := s.assignments.HasCurrentAssignment(ctx, in.SubjectID, in.TeacherID, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NewPrecondition("You are not currently assigned to this subject")
	}

	studentIDs := make([]uuid.UUID, 0, len(in.Entries))
	for _, e := range in.Entries {
		studentIDs = append(studentIDs, e.StudentID)
	}

	enrollmentByStudent, err := s.enroller.EnsureEnrolled(ctx, enrollmentService.EnrollInput{
		ContainerType: enrollmentModel.ContainerSubject,
		ContainerID:   in.SubjectID,
		SemesterID:    sem.SemesterID,
		StudentIDs:    studentIDs,
		Actor:         enrollmentService.Actor{ID: in.TeacherID, Role: constants.RoleTeacher},
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	teacher := in.TeacherID
	sub := &model.GradeSubmissionModel{
		GradeSubmissionID:          uuid.New(),
		GradeSubmissionReviewerID:  in.ReviewerID,
		GradeSubmissionSemesterID:  sem.SemesterID,
		GradeSubmissionSubjectID:   in.SubjectID,
		GradeSubmissionTeacherID:   teacher,
		GradeSubmissionQuarter:     in.Quarter,
		GradeSubmissionStatus:      model.StatusPending,
		GradeSubmissionSubmittedAt: now,
		GradeSubmissionCreatedBy:   &teacher,
	}

	rows := buildGradeRows(sub.GradeSubmissionID, in, enrollmentByStudent)

	evt := events.Event{
		Type:       events.TypeGradeSubmissionSubmitted,
		OccurredAt: now,
		Payload: map[string]any{
			"grade_submission_id": sub.GradeSubmissionID,
			"subject_id":          in.SubjectID,
			"semester_id":         sem.SemesterID,
			"teacher_id":          in.TeacherID,
			"reviewer_id":         in.ReviewerID,
			"quarter":             in.Quarter,
		},
	}

	if err := s.store.CreateSubmission(ctx, sub, rows, evt); err != nil {
		return nil, err
	}
	return sub, nil
}

/* ============================================
   Review transitions
============================================ */

// MarkUnderReview is the reviewer's claim on a pending submission.
func (s *Service) MarkUnderReview(ctx context.Context, id, reviewerID uuid.UUID) (*model.GradeSubmissionModel, error) {
	sub, err := s.store.GetSubmission(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.GradeSubmissionReviewerID != reviewerID {
		return nil, apperr.NewState("You are not the assigned reviewer for this submission")
	}
	if sub.GradeSubmissionStatus != model.StatusPending {
		return nil, apperr.NewState("Only pending submissions can be marked under review")
	}

	now := time.Now()
	err = s.store.TransitionStatus(ctx, id,
		[]string{model.StatusPending},
		StatusChange{To: model.StatusUnderReview, At: now, ActorID: reviewerID},
		nil,
	)
	if err != nil {
		return nil, err
	}
	return s.store.GetSubmission(ctx, id)
}

// Decide finalizes a submission. decision is approved or rejected; both are
// terminal, and only rejection frees the slot for a fresh submission.
func (s *Service) Decide(ctx context.Context, id, reviewerID uuid.UUID, decision string, remark *string) (*model.GradeSubmissionModel, error) {
	if decision != model.StatusApproved && decision != model.StatusRejected {
		return nil, apperr.NewValidation("decision must be approved or rejected")
	}

	sub, err := s.store.GetSubmission(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.GradeSubmissionReviewerID != reviewerID {
		return nil, apperr.NewState("You are not the assigned reviewer for this submission")
	}
	if !sub.IsLive() {
		return nil, apperr.NewState("Submission has already been finalized")
	}

	now := time.Now()
	evtType := events.TypeGradeSubmissionApproved
	if decision == model.StatusRejected {
		evtType = events.TypeGradeSubmissionRejected
	}
	evt := events.Event{
		Type:       evtType,
		OccurredAt: now,
		Payload: map[string]any{
			"grade_submission_id": sub.GradeSubmissionID,
			"subject_id":          sub.GradeSubmissionSubjectID,
			"teacher_id":          sub.GradeSubmissionTeacherID,
			"reviewer_id":         reviewerID,
			"quarter":             sub.GradeSubmissionQuarter,
			"remark":              remark,
		},
	}

	err = s.store.TransitionStatus(ctx, id,
		[]string{model.StatusPending, model.StatusUnderReview},
		StatusChange{To: decision, At: now, Remark: remark, ActorID: reviewerID},
		&evt,
	)
	if err != nil {
		return nil, err
	}
	return s.store.GetSubmission(ctx, id)
}

/* ============================================
   Replace
============================================ */

// Replace swaps the grade rows of a still-pending submission. Once a reviewer
// has touched it the teacher must wait for a rejection and resubmit.
func (s *Service) Replace(ctx context.Context, id, teacherID uuid.UUID, entries []GradeEntry) (*model.GradeSubmissionModel, error) {
	sub, err := s.store.GetSubmission(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.GradeSubmissionTeacherID != teacherID {
		return nil, apperr.NewPrecondition("Only the submitting teacher can replace a submission")
	}
	if sub.GradeSubmissionStatus != model.StatusPending {
		return nil, apperr.NewState("Only pending submissions can be replaced")
	}

	in := SubmitInput{
		SubjectID:  sub.GradeSubmissionSubjectID,
		ReviewerID: sub.GradeSubmissionReviewerID,
		Quarter:    sub.GradeSubmissionQuarter,
		Entries:    entries,
		TeacherID:  teacherID,
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	studentIDs := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		studentIDs = append(studentIDs, e.StudentID)
	}
	enrollmentByStudent, err := s.enroller.EnsureEnrolled(ctx, enrollmentService.EnrollInput{
		ContainerType: enrollmentModel.ContainerSubject,
		ContainerID:   sub.GradeSubmissionSubjectID,
		SemesterID:    sub.GradeSubmissionSemesterID,
		StudentIDs:    studentIDs,
		Actor:         enrollmentService.Actor{ID: teacherID, Role: constants.RoleTeacher},
	})
	if err != nil {
		return nil, err
	}

	rows := buildGradeRows(sub.GradeSubmissionID, in, enrollmentByStudent)
	if err := s.store.ReplaceGrades(ctx, id, model.StatusPending, rows); err != nil {
		return nil, err
	}
	return sub, nil
}

/* ============================================
   Reads
============================================ */

// SubmissionDetail returns the submission with its grade rows. Only the
// submitting teacher and the assigned reviewer can see it; everyone else gets
// a not-found, not a forbidden, so the id leaks nothing.
func (s *Service) SubmissionDetail(ctx context.Context, id, viewerID uuid.UUID) (*model.GradeSubmissionModel, []model.GradeModel, error) {
	sub, err := s.store.GetSubmission(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if sub.GradeSubmissionTeacherID != viewerID && sub.GradeSubmissionReviewerID != viewerID {
		return nil, nil, apperr.NewNotFound("Submission")
	}
	rows, err := s.store.ListGradesBySubmission(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return sub, rows, nil
}

func (s *Service) TeacherSubmissions(ctx context.Context, teacherID uuid.UUID, offset, limit int) ([]model.GradeSubmissionModel, int64, error) {
	return s.store.ListByTeacher(ctx, teacherID, offset, limit)
}

func (s *Service) ReviewerSubmissions(ctx context.Context, reviewerID uuid.UUID, f ReviewFilter, offset, limit int) ([]model.GradeSubmissionModel, int64, error) {
	if f.Status != nil {
		switch *f.Status {
		case model.StatusPending, model.StatusUnderReview, model.StatusApproved, model.StatusRejected:
		default:
			return nil, 0, apperr.NewValidation("status filter is not a valid submission status")
		}
	}
	return s.store.ListForReviewer(ctx, reviewerID, f, offset, limit)
}

/* ============================================
   Student report card
============================================ */

// GradeCard is one subject line on a student's report: per-quarter marks and,
// once both quarters are in, the final average with its pass/fail remark.
type GradeCard struct {
	SubjectID    uuid.UUID `json:"subject_id"`
	SubjectName  string    `json:"subject_name"`
	Quarter1     *int      `json:"quarter_1,omitempty"`
	Quarter2     *int      `json:"quarter_2,omitempty"`
	FinalAverage *int      `json:"final_average,omitempty"`
	Remarks      *string   `json:"remarks,omitempty"`
}

// StudentGrades builds the report card from approved submissions only.
// Pending, under-review, and rejected marks are invisible to students.
func (s *Service) StudentGrades(ctx context.Context, studentID, semesterID uuid.UUID) ([]GradeCard, error) {
	rows, err := s.store.ListApprovedGradesForStudent(ctx, studentID, semesterID)
	if err != nil {
		return nil, err
	}

	cards := make([]GradeCard, 0)
	index := make(map[uuid.UUID]int)
	for _, row := range rows {
		i, ok := index[row.SubjectID]
		if !ok {
			cards = append(cards, GradeCard{
				SubjectID:   row.SubjectID,
				SubjectName: row.SubjectName,
			})
			i = len(cards) - 1
			index[row.SubjectID] = i
		}
		g := row.Grade
		switch row.Quarter {
		case 1:
			cards[i].Quarter1 = &g
		case 2:
			cards[i].Quarter2 = &g
		}
	}

	for i := range cards {
		finalizeCard(&cards[i])
	}
	return cards, nil
}

func finalizeCard(c *GradeCard) {
	if c.Quarter1 == nil || c.Quarter2 == nil {
		return
	}
	avg := FinalAverage(*c.Quarter1, *c.Quarter2)
	c.FinalAverage = &avg
	remark := RemarkFailed
	if avg >= PassingGrade {
		remark = RemarkPassed
	}
	c.Remarks = &remark
}

// FinalAverage rounds half up, so 70 and 79 average to 75.
func FinalAverage(q1, q2 int) int {
	return int(math.Floor((float64(q1)+float64(q2))/2.0 + 0.5))
}

/* ============================================
   Internals
============================================ */

func buildGradeRows(submissionID uuid.UUID, in SubmitInput, enrollmentByStudent map[uuid.UUID]uuid.UUID) []model.GradeModel {
	teacher := in.TeacherID
	rows := make([]model.GradeModel, 0, len(in.Entries))
	for _, e := range in.Entries {
		g := e.Grade
		row := model.GradeModel{
			GradeID:           uuid.New(),
			GradeSubmissionID: submissionID,
			GradeEnrollmentID: enrollmentByStudent[e.StudentID],
			GradeCreatedBy:    &teacher,
		}
		if in.Quarter == 1 {
			row.GradeQuarter1 = &g
		} else {
			row.GradeQuarter2 = &g
		}
		rows = append(rows, row)
	}
	return rows
}
