// file: internals/features/school/grades/service/grade_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/apperr"
	"schoolku_backend/internals/events"
	enrollmentService "schoolku_backend/internals/features/school/enrollments/service"
	"schoolku_backend/internals/features/school/grades/model"
	semesterModel "schoolku_backend/internals/features/school/semesters/model"
)

/* ============================================
   Fakes
============================================ */

type memGradeStore struct {
	subs   map[uuid.UUID]*model.GradeSubmissionModel
	grades map[uuid.UUID][]model.GradeModel
	events []events.Event

	subjectNames map[uuid.UUID]string
	// enrollment -> student, filled by the fake enroller
	studentByEnrollment map[uuid.UUID]uuid.UUID
}

func newMemGradeStore() *memGradeStore {
	return &memGradeStore{
		subs:                make(map[uuid.UUID]*model.GradeSubmissionModel),
		grades:              make(map[uuid.UUID][]model.GradeModel),
		subjectNames:        make(map[uuid.UUID]string),
		studentByEnrollment: make(map[uuid.UUID]uuid.UUID),
	}
}

func (s *memGradeStore) CreateSubmission(_ context.Context, sub *model.GradeSubmissionModel, grades []model.GradeModel, evt events.Event) error {
	for _, other := range s.subs {
		if other.GradeSubmissionTeacherID == sub.GradeSubmissionTeacherID &&
			other.GradeSubmissionSubjectID == sub.GradeSubmissionSubjectID &&
			other.GradeSubmissionSemesterID == sub.GradeSubmissionSemesterID &&
			other.GradeSubmissionQuarter == sub.GradeSubmissionQuarter &&
			other.GradeSubmissionStatus != model.StatusRejected {
			return apperr.NewConflict("The grades for this subject have already been submitted.")
		}
	}
	cp := *sub
	s.subs[sub.GradeSubmissionID] = &cp
	s.grades[sub.GradeSubmissionID] = append([]model.GradeModel(nil), grades...)
	s.events = append(s.events, evt)
	return nil
}

func (s *memGradeStore) GetSubmission(_ context.Context, id uuid.UUID) (*model.GradeSubmissionModel, error) {
	m, ok := s.subs[id]
	if !ok {
		return nil, apperr.NewNotFound("Submission")
	}
	cp := *m
	return &cp, nil
}

func (s *memGradeStore) TransitionStatus(_ context.Context, id uuid.UUID, from []string, ch StatusChange, evt *events.Event) error {
	m, ok := s.subs[id]
	if !ok {
		return apperr.NewState("Submission status changed, please reload and try again")
	}
	allowed := false
	for _, f := range from {
		if m.GradeSubmissionStatus == f {
			allowed = true
		}
	}
	if !allowed {
		return apperr.NewState("Submission status changed, please reload and try again")
	}
	m.GradeSubmissionStatus = ch.To
	switch ch.To {
	case model.StatusUnderReview:
		m.GradeSubmissionMarkedUnderReviewAt = &ch.At
	case model.StatusApproved:
		m.GradeSubmissionMarkedApprovedAt = &ch.At
	case model.StatusRejected:
		m.GradeSubmissionMarkedRejectedAt = &ch.At
	}
	if ch.Remark != nil {
		m.GradeSubmissionRemark = ch.Remark
	}
	if evt != nil {
		s.events = append(s.events, *evt)
	}
	return nil
}

func (s *memGradeStore) ReplaceGrades(_ context.Context, submissionID uuid.UUID, ifStatus string, grades []model.GradeModel) error {
	m, ok := s.subs[submissionID]
	if !ok || m.GradeSubmissionStatus != ifStatus {
		return apperr.NewState("Submission status changed, please reload and try again")
	}
	s.grades[submissionID] = append([]model.GradeModel(nil), grades...)
	return nil
}

func (s *memGradeStore) ListGradesBySubmission(_ context.Context, submissionID uuid.UUID) ([]model.GradeModel, error) {
	return append([]model.GradeModel(nil), s.grades[submissionID]...), nil
}

func (s *memGradeStore) ListByTeacher(_ context.Context, teacherID uuid.UUID, offset, limit int) ([]model.GradeSubmissionModel, int64, error) {
	var out []model.GradeSubmissionModel
	for _, m := range s.subs {
		if m.GradeSubmissionTeacherID == teacherID {
			out = append(out, *m)
		}
	}
	return out, int64(len(out)), nil
}

func (s *memGradeStore) ListForReviewer(_ context.Context, reviewerID uuid.UUID, f ReviewFilter, offset, limit int) ([]model.GradeSubmissionModel, int64, error) {
	var out []model.GradeSubmissionModel
	for _, m := range s.subs {
		if m.GradeSubmissionReviewerID != reviewerID {
			continue
		}
		if f.Status != nil && m.GradeSubmissionStatus != *f.Status {
			continue
		}
		if f.TeacherID != nil && m.GradeSubmissionTeacherID != *f.TeacherID {
			continue
		}
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (s *memGradeStore) ListApprovedGradesForStudent(_ context.Context, studentID, semesterID uuid.UUID) ([]StudentGradeRow, error) {
	var out []StudentGradeRow
	for subID, sub := range s.subs {
		if sub.GradeSubmissionStatus != model.StatusApproved || sub.GradeSubmissionSemesterID != semesterID {
			continue
		}
		for _, g := range s.grades[subID] {
			if s.studentByEnrollment[g.GradeEnrollmentID] != studentID {
				continue
			}
			row := StudentGradeRow{
				SubjectID:   sub.GradeSubmissionSubjectID,
				SubjectName: s.subjectNames[sub.GradeSubmissionSubjectID],
				Quarter:     sub.GradeSubmissionQuarter,
			}
			if sub.GradeSubmissionQuarter == 1 && g.GradeQuarter1 != nil {
				row.Grade = *g.GradeQuarter1
			}
			if sub.GradeSubmissionQuarter == 2 && g.GradeQuarter2 != nil {
				row.Grade = *g.GradeQuarter2
			}
			out = append(out, row)
		}
	}
	return out, nil
}

type fakeActiveSemester struct {
	active *semesterModel.SemesterModel
}

func (f *fakeActiveSemester) RequireActive(_ context.Context) (*semesterModel.SemesterModel, error) {
	if f.active == nil {
		return nil, apperr.NewPrecondition("There is no active semester at the moment")
	}
	return f.active, nil
}

type fakeAssignmentChecker struct {
	held map[uuid.UUID]uuid.UUID
}

func (f *fakeAssignmentChecker) HasCurrentAssignment(_ context.Context, entityID, personID uuid.UUID, _ time.Time) (bool, error) {
	return f.held[entityID] == personID, nil
}

// fakeEnroller hands out stable enrollment ids per student and mirrors the
// mapping into the store for the report-card read.
type fakeEnroller struct {
	store       *memGradeStore
	enrollments map[uuid.UUID]uuid.UUID // student -> enrollment
}

func (f *fakeEnroller) EnsureEnrolled(_ context.Context, in enrollmentService.EnrollInput) (map[uuid.UUID]uuid.UUID, error) {
	out := make(map[uuid.UUID]uuid.UUID, len(in.StudentIDs))
	for _, studentID := range in.StudentIDs {
		id, ok := f.enrollments[studentID]
		if !ok {
			id = uuid.New()
			f.enrollments[studentID] = id
			f.store.studentByEnrollment[id] = studentID
		}
		out[studentID] = id
	}
	return out, nil
}

/* ============================================
   Fixture
============================================ */

type gradeFixture struct {
	svc       *Service
	store     *memGradeStore
	semesters *fakeActiveSemester

	semester uuid.UUID
	subject  uuid.UUID
	teacher  uuid.UUID
	reviewer uuid.UUID
}

func newGradeFixture() *gradeFixture {
	f := &gradeFixture{
		store:    newMemGradeStore(),
		semester: uuid.New(),
		subject:  uuid.New(),
		teacher:  uuid.New(),
		reviewer: uuid.New(),
	}
	f.semesters = &fakeActiveSemester{active: &semesterModel.SemesterModel{
		SemesterID: f.semester, SemesterSyStartYear: 2025, SemesterSyEndYear: 2026,
		SemesterTerm: 1, SemesterStatus: semesterModel.StatusActive,
	}}
	f.store.subjectNames[f.subject] = "General Mathematics"
	checker := &fakeAssignmentChecker{held: map[uuid.UUID]uuid.UUID{f.subject: f.teacher}}
	enroller := &fakeEnroller{store: f.store, enrollments: make(map[uuid.UUID]uuid.UUID)}
	f.svc = NewService(f.store, f.semesters, checker, enroller)
	return f
}

func (f *gradeFixture) submit(t *testing.T, quarter int, entries ...GradeEntry) *model.GradeSubmissionModel {
	t.Helper()
	sub, err := f.svc.Submit(context.Background(), SubmitInput{
		SubjectID:  f.subject,
		ReviewerID: f.reviewer,
		Quarter:    quarter,
		Entries:    entries,
		TeacherID:  f.teacher,
	})
	require.NoError(t, err)
	return sub
}

/* ============================================
   Tests
============================================ */

func TestSubmitCreatesPendingSubmission(t *testing.T) {
	f := newGradeFixture()
	student := uuid.New()

	sub := f.submit(t, 1, GradeEntry{StudentID: student, Grade: 88})

	assert.Equal(t, model.StatusPending, sub.GradeSubmissionStatus)
	assert.Equal(t, 1, sub.GradeSubmissionQuarter)

	rows, err := f.store.ListGradesBySubmission(context.Background(), sub.GradeSubmissionID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].GradeQuarter1)
	assert.Equal(t, 88, *rows[0].GradeQuarter1)
	assert.Nil(t, rows[0].GradeQuarter2)

	require.Len(t, f.store.events, 1)
	assert.Equal(t, events.TypeGradeSubmissionSubmitted, f.store.events[0].Type)
}

func TestSubmitTwiceSameSlotConflicts(t *testing.T) {
	f := newGradeFixture()

	f.submit(t, 1, GradeEntry{StudentID: uuid.New(), Grade: 80})

	_, err := f.svc.Submit(context.Background(), SubmitInput{
		SubjectID:  f.subject,
		ReviewerID: f.reviewer,
		Quarter:    1,
		Entries:    []GradeEntry{{StudentID: uuid.New(), Grade: 90}},
		TeacherID:  f.teacher,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	// the other quarter is a different slot
	f.submit(t, 2, GradeEntry{StudentID: uuid.New(), Grade: 90})
}

func TestSubmitRequiresActiveSemester(t *testing.T) {
	f := newGradeFixture()
	f.semesters.active = nil

	_, err := f.svc.Submit(context.Background(), SubmitInput{
		SubjectID:  f.subject,
		ReviewerID: f.reviewer,
		Quarter:    1,
		Entries:    []GradeEntry{{StudentID: uuid.New(), Grade: 80}},
		TeacherID:  f.teacher,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsPrecondition(err))
}

func TestSubmitRequiresAssignment(t *testing.T) {
	f := newGradeFixture()

	_, err := f.svc.Submit(context.Background(), SubmitInput{
		SubjectID:  f.subject,
		ReviewerID: f.reviewer,
		Quarter:    1,
		Entries:    []GradeEntry{{StudentID: uuid.New(), Grade: 80}},
		TeacherID:  uuid.New(),
	})
	require.Error(t, err)
	assert.True(t, apperr.IsPrecondition(err))
}

func TestSubmitValidatesGradeRange(t *testing.T) {
	f := newGradeFixture()

	for _, grade := range []int{-1, 101} {
		_, err := f.svc.Submit(context.Background(), SubmitInput{
			SubjectID:  f.subject,
			ReviewerID: f.reviewer,
			Quarter:    1,
			Entries:    []GradeEntry{{StudentID: uuid.New(), Grade: grade}},
			TeacherID:  f.teacher,
		})
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
	}
}

func TestMarkUnderReview(t *testing.T) {
	f := newGradeFixture()
	ctx := context.Background()
	sub := f.submit(t, 1, GradeEntry{StudentID: uuid.New(), Grade: 80})

	got, err := f.svc.MarkUnderReview(ctx, sub.GradeSubmissionID, f.reviewer)
	require.NoError(t, err)
	assert.Equal(t, model.StatusUnderReview, got.GradeSubmissionStatus)
	assert.NotNil(t, got.GradeSubmissionMarkedUnderReviewAt)

	// already under review
	_, err = f.svc.MarkUnderReview(ctx, sub.GradeSubmissionID, f.reviewer)
	require.Error(t, err)
	assert.True(t, apperr.IsState(err))
}

func TestMarkUnderReviewWrongReviewer(t *testing.T) {
	f := newGradeFixture()
	sub := f.submit(t, 1, GradeEntry{StudentID: uuid.New(), Grade: 80})

	_, err := f.svc.MarkUnderReview(context.Background(), sub.GradeSubmissionID, uuid.New())
	require.Error(t, err)
	assert.True(t, apperr.IsState(err))
}

func TestDecideApprove(t *testing.T) {
	f := newGradeFixture()
	ctx := context.Background()
	sub := f.submit(t, 1, GradeEntry{StudentID: uuid.New(), Grade: 80})

	got, err := f.svc.Decide(ctx, sub.GradeSubmissionID, f.reviewer, model.StatusApproved, nil)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, got.GradeSubmissionStatus)
	assert.NotNil(t, got.GradeSubmissionMarkedApprovedAt)

	last := f.store.events[len(f.store.events)-1]
	assert.Equal(t, events.TypeGradeSubmissionApproved, last.Type)

	// terminal: no further transitions
	_, err = f.svc.Decide(ctx, sub.GradeSubmissionID, f.reviewer, model.StatusRejected, nil)
	require.Error(t, err)
	assert.True(t, apperr.IsState(err))
	_, err = f.svc.MarkUnderReview(ctx, sub.GradeSubmissionID, f.reviewer)
	require.Error(t, err)
	assert.True(t, apperr.IsState(err))
}

func TestDecideRejectFromUnderReview(t *testing.T) {
	f := newGradeFixture()
	ctx := context.Background()
	sub := f.submit(t, 1, GradeEntry{StudentID: uuid.New(), Grade: 80})

	_, err := f.svc.MarkUnderReview(ctx, sub.GradeSubmissionID, f.reviewer)
	require.NoError(t, err)

	remark := "Grades look off for two students"
	got, err := f.svc.Decide(ctx, sub.GradeSubmissionID, f.reviewer, model.StatusRejected, &remark)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, got.GradeSubmissionStatus)
	assert.Equal(t, remark, *got.GradeSubmissionRemark)
	assert.NotNil(t, got.GradeSubmissionMarkedRejectedAt)

	last := f.store.events[len(f.store.events)-1]
	assert.Equal(t, events.TypeGradeSubmissionRejected, last.Type)
}

func TestResubmitAfterRejection(t *testing.T) {
	f := newGradeFixture()
	ctx := context.Background()
	sub := f.submit(t, 1, GradeEntry{StudentID: uuid.New(), Grade: 80})

	_, err := f.svc.Decide(ctx, sub.GradeSubmissionID, f.reviewer, model.StatusRejected, nil)
	require.NoError(t, err)

	// rejection frees the slot
	f.submit(t, 1, GradeEntry{StudentID: uuid.New(), Grade: 85})
}

func TestReplaceOnlyPending(t *testing.T) {
	f := newGradeFixture()
	ctx := context.Background()
	student := uuid.New()
	sub := f.submit(t, 1, GradeEntry{StudentID: student, Grade: 80})

	_, err := f.svc.Replace(ctx, sub.GradeSubmissionID, f.teacher, []GradeEntry{{StudentID: student, Grade: 91}})
	require.NoError(t, err)

	rows, err := f.store.ListGradesBySubmission(ctx, sub.GradeSubmissionID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 91, *rows[0].GradeQuarter1)

	_, err = f.svc.MarkUnderReview(ctx, sub.GradeSubmissionID, f.reviewer)
	require.NoError(t, err)

	_, err = f.svc.Replace(ctx, sub.GradeSubmissionID, f.teacher, []GradeEntry{{StudentID: student, Grade: 95}})
	require.Error(t, err)
	assert.True(t, apperr.IsState(err))
}

func TestReplaceOnlyByOwner(t *testing.T) {
	f := newGradeFixture()
	sub := f.submit(t, 1, GradeEntry{StudentID: uuid.New(), Grade: 80})

	_, err := f.svc.Replace(context.Background(), sub.GradeSubmissionID, uuid.New(), []GradeEntry{{StudentID: uuid.New(), Grade: 90}})
	require.Error(t, err)
	assert.True(t, apperr.IsPrecondition(err))
}

func TestSubmissionDetailVisibility(t *testing.T) {
	f := newGradeFixture()
	ctx := context.Background()
	sub := f.submit(t, 1, GradeEntry{StudentID: uuid.New(), Grade: 80})

	_, _, err := f.svc.SubmissionDetail(ctx, sub.GradeSubmissionID, f.teacher)
	require.NoError(t, err)
	_, _, err = f.svc.SubmissionDetail(ctx, sub.GradeSubmissionID, f.reviewer)
	require.NoError(t, err)

	_, _, err = f.svc.SubmissionDetail(ctx, sub.GradeSubmissionID, uuid.New())
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestStudentSeesOnlyApprovedGrades(t *testing.T) {
	f := newGradeFixture()
	ctx := context.Background()
	student := uuid.New()

	sub := f.submit(t, 1, GradeEntry{StudentID: student, Grade: 82})

	cards, err := f.svc.StudentGrades(ctx, student, f.semester)
	require.NoError(t, err)
	assert.Empty(t, cards)

	_, err = f.svc.Decide(ctx, sub.GradeSubmissionID, f.reviewer, model.StatusApproved, nil)
	require.NoError(t, err)

	cards, err = f.svc.StudentGrades(ctx, student, f.semester)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	require.NotNil(t, cards[0].Quarter1)
	assert.Equal(t, 82, *cards[0].Quarter1)
	// single quarter: no final average yet
	assert.Nil(t, cards[0].FinalAverage)
	assert.Nil(t, cards[0].Remarks)
}

func TestReportCardMergesQuarters(t *testing.T) {
	f := newGradeFixture()
	ctx := context.Background()
	student := uuid.New()

	q1 := f.submit(t, 1, GradeEntry{StudentID: student, Grade: 70})
	q2 := f.submit(t, 2, GradeEntry{StudentID: student, Grade: 80})
	for _, sub := range []*model.GradeSubmissionModel{q1, q2} {
		_, err := f.svc.Decide(ctx, sub.GradeSubmissionID, f.reviewer, model.StatusApproved, nil)
		require.NoError(t, err)
	}

	cards, err := f.svc.StudentGrades(ctx, student, f.semester)
	require.NoError(t, err)
	require.Len(t, cards, 1)

	require.NotNil(t, cards[0].FinalAverage)
	assert.Equal(t, 75, *cards[0].FinalAverage)
	assert.Equal(t, RemarkPassed, *cards[0].Remarks)
}

func TestFinalAverageRounding(t *testing.T) {
	assert.Equal(t, 75, FinalAverage(70, 80))
	// .5 rounds up
	assert.Equal(t, 75, FinalAverage(70, 79))
	assert.Equal(t, 74, FinalAverage(70, 78))
	assert.Equal(t, 100, FinalAverage(100, 100))
	assert.Equal(t, 0, FinalAverage(0, 0))
}

func TestFailingAverage(t *testing.T) {
	f := newGradeFixture()
	ctx := context.Background()
	student := uuid.New()

	q1 := f.submit(t, 1, GradeEntry{StudentID: student, Grade: 70})
	q2 := f.submit(t, 2, GradeEntry{StudentID: student, Grade: 78})
	for _, sub := range []*model.GradeSubmissionModel{q1, q2} {
		_, err := f.svc.Decide(ctx, sub.GradeSubmissionID, f.reviewer, model.StatusApproved, nil)
		require.NoError(t, err)
	}

	cards, err := f.svc.StudentGrades(ctx, student, f.semester)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, 74, *cards[0].FinalAverage)
	assert.Equal(t, RemarkFailed, *cards[0].Remarks)
}

func TestReviewerInboxFilter(t *testing.T) {
	f := newGradeFixture()
	ctx := context.Background()

	sub := f.submit(t, 1, GradeEntry{StudentID: uuid.New(), Grade: 80})
	f.submit(t, 2, GradeEntry{StudentID: uuid.New(), Grade: 85})

	_, err := f.svc.Decide(ctx, sub.GradeSubmissionID, f.reviewer, model.StatusApproved, nil)
	require.NoError(t, err)

	pending := model.StatusPending
	rows, total, err := f.svc.ReviewerSubmissions(ctx, f.reviewer, ReviewFilter{Status: &pending}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, model.StatusPending, rows[0].GradeSubmissionStatus)

	bad := "archived"
	_, _, err = f.svc.ReviewerSubmissions(ctx, f.reviewer, ReviewFilter{Status: &bad}, 0, 10)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}
