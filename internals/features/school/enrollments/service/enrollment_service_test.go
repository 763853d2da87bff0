// file: internals/features/school/enrollments/service/enrollment_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/apperr"
	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/school/enrollments/model"
	semesterModel "schoolku_backend/internals/features/school/semesters/model"
)

/* ============================================
   Fakes
============================================ */

type memEnrollmentStore struct {
	rows map[uuid.UUID]*model.EnrollmentModel
}

func newMemEnrollmentStore() *memEnrollmentStore {
	return &memEnrollmentStore{rows: make(map[uuid.UUID]*model.EnrollmentModel)}
}

func (s *memEnrollmentStore) CreateBatch(_ context.Context, rows []model.EnrollmentModel) error {
	for i := range rows {
		for _, other := range s.rows {
			if other.EnrollmentContainerID == rows[i].EnrollmentContainerID &&
				other.EnrollmentSemesterID == rows[i].EnrollmentSemesterID &&
				other.EnrollmentStudentID == rows[i].EnrollmentStudentID {
				return apperr.NewConflict("Student is already enrolled for this semester")
			}
		}
	}
	for i := range rows {
		cp := rows[i]
		s.rows[cp.EnrollmentID] = &cp
	}
	return nil
}

func (s *memEnrollmentStore) GetByID(_ context.Context, id uuid.UUID) (*model.EnrollmentModel, error) {
	m, ok := s.rows[id]
	if !ok {
		return nil, apperr.NewNotFound("Enrollment")
	}
	cp := *m
	return &cp, nil
}

func (s *memEnrollmentStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.rows[id]; !ok {
		return apperr.NewNotFound("Enrollment")
	}
	delete(s.rows, id)
	return nil
}

func (s *memEnrollmentStore) ListExisting(_ context.Context, containerID, semesterID uuid.UUID, studentIDs []uuid.UUID) ([]model.EnrollmentModel, error) {
	want := make(map[uuid.UUID]struct{}, len(studentIDs))
	for _, id := range studentIDs {
		want[id] = struct{}{}
	}
	var out []model.EnrollmentModel
	for _, m := range s.rows {
		if m.EnrollmentContainerID != containerID || m.EnrollmentSemesterID != semesterID {
			continue
		}
		if _, ok := want[m.EnrollmentStudentID]; ok {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *memEnrollmentStore) ExistsSectionEnrollment(_ context.Context, studentID, semesterID uuid.UUID) (bool, error) {
	for _, m := range s.rows {
		if m.EnrollmentStudentID == studentID && m.EnrollmentSemesterID == semesterID &&
			m.EnrollmentContainerType == model.ContainerSection {
			return true, nil
		}
	}
	return false, nil
}

func (s *memEnrollmentStore) ListByContainerAndSemester(_ context.Context, containerID, semesterID uuid.UUID, offset, limit int) ([]model.EnrollmentModel, int64, error) {
	var out []model.EnrollmentModel
	for _, m := range s.rows {
		if m.EnrollmentContainerID == containerID && m.EnrollmentSemesterID == semesterID {
			out = append(out, *m)
		}
	}
	return out, int64(len(out)), nil
}

func (s *memEnrollmentStore) ListByStudentAndSemester(_ context.Context, studentID, semesterID uuid.UUID) ([]model.EnrollmentModel, error) {
	var out []model.EnrollmentModel
	for _, m := range s.rows {
		if m.EnrollmentStudentID == studentID && m.EnrollmentSemesterID == semesterID {
			out = append(out, *m)
		}
	}
	return out, nil
}

type fakeSemesters struct {
	rows map[uuid.UUID]*semesterModel.SemesterModel
}

func (f *fakeSemesters) GetByID(_ context.Context, id uuid.UUID) (*semesterModel.SemesterModel, error) {
	m, ok := f.rows[id]
	if !ok {
		return nil, apperr.NewNotFound("Semester")
	}
	return m, nil
}

type fakeContainers struct {
	rows map[uuid.UUID]*ContainerInfo
}

func (f *fakeContainers) Get(_ context.Context, kind string, id uuid.UUID) (*ContainerInfo, error) {
	c, ok := f.rows[id]
	if !ok || c.Kind != kind {
		return nil, apperr.NewNotFound("Section")
	}
	cp := *c
	return &cp, nil
}

type fakeAssignments struct {
	held map[uuid.UUID]uuid.UUID // entity -> person
}

func (f *fakeAssignments) HasCurrentAssignment(_ context.Context, entityID, personID uuid.UUID, _ time.Time) (bool, error) {
	return f.held[entityID] == personID, nil
}

type fakeGrades struct {
	graded map[uuid.UUID]bool
}

func (f *fakeGrades) HasGrades(_ context.Context, enrollmentID uuid.UUID) (bool, error) {
	return f.graded[enrollmentID], nil
}

/* ============================================
   Fixture
============================================ */

type enrollFixture struct {
	svc         *Service
	store       *memEnrollmentStore
	semesters   *fakeSemesters
	containers  *fakeContainers
	assignments *fakeAssignments
	grades      *fakeGrades

	activeSem uuid.UUID
	endedSem  uuid.UUID
	section   uuid.UUID
	subject   uuid.UUID
	teacher   uuid.UUID
}

func newEnrollFixture() *enrollFixture {
	f := &enrollFixture{
		store:     newMemEnrollmentStore(),
		activeSem: uuid.New(),
		endedSem:  uuid.New(),
		section:   uuid.New(),
		subject:   uuid.New(),
		teacher:   uuid.New(),
	}
	f.semesters = &fakeSemesters{rows: map[uuid.UUID]*semesterModel.SemesterModel{
		f.activeSem: {SemesterID: f.activeSem, SemesterSyStartYear: 2025, SemesterSyEndYear: 2026, SemesterTerm: 1, SemesterStatus: semesterModel.StatusActive},
		f.endedSem:  {SemesterID: f.endedSem, SemesterSyStartYear: 2024, SemesterSyEndYear: 2025, SemesterTerm: 2, SemesterStatus: semesterModel.StatusEnded},
	}}
	f.containers = &fakeContainers{rows: map[uuid.UUID]*ContainerInfo{
		f.section: {ID: f.section, Kind: model.ContainerSection, Name: "Einstein", Detail: "11"},
		f.subject: {ID: f.subject, Kind: model.ContainerSubject, Name: "General Mathematics", Detail: "core"},
	}}
	f.assignments = &fakeAssignments{held: map[uuid.UUID]uuid.UUID{
		f.section: f.teacher,
		f.subject: f.teacher,
	}}
	f.grades = &fakeGrades{graded: make(map[uuid.UUID]bool)}
	f.svc = NewService(f.store, f.semesters, f.containers, f.assignments, f.grades)
	return f
}

func (f *enrollFixture) admin() Actor {
	return Actor{ID: uuid.New(), Role: constants.RoleAdmin, IsAdmin: true}
}

func (f *enrollFixture) asTeacher() Actor {
	return Actor{ID: f.teacher, Role: constants.RoleTeacher}
}

/* ============================================
   Tests
============================================ */

func TestEnrollManyCopiesSnapshots(t *testing.T) {
	f := newEnrollFixture()
	student := uuid.New()

	rows, err := f.svc.EnrollMany(context.Background(), EnrollInput{
		ContainerType: model.ContainerSection,
		ContainerID:   f.section,
		SemesterID:    f.activeSem,
		StudentIDs:    []uuid.UUID{student},
		Actor:         f.admin(),
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Einstein", rows[0].EnrollmentContainerNameSnapshot)
	assert.Equal(t, "11", rows[0].EnrollmentContainerDetailSnapshot)
	assert.Equal(t, 2025, rows[0].EnrollmentSyStartSnapshot)
	assert.Equal(t, 2026, rows[0].EnrollmentSyEndSnapshot)
	assert.Equal(t, 1, rows[0].EnrollmentTermSnapshot)
}

func TestSnapshotSurvivesContainerRename(t *testing.T) {
	f := newEnrollFixture()
	student := uuid.New()
	ctx := context.Background()

	rows, err := f.svc.EnrollMany(ctx, EnrollInput{
		ContainerType: model.ContainerSection,
		ContainerID:   f.section,
		SemesterID:    f.activeSem,
		StudentIDs:    []uuid.UUID{student},
		Actor:         f.admin(),
	})
	require.NoError(t, err)

	f.containers.rows[f.section].Name = "Newton"

	got, err := f.svc.GetByID(ctx, rows[0].EnrollmentID)
	require.NoError(t, err)
	assert.Equal(t, "Einstein", got.EnrollmentContainerNameSnapshot)
}

func TestEnrollManyRejectsDuplicate(t *testing.T) {
	f := newEnrollFixture()
	student := uuid.New()
	ctx := context.Background()

	_, err := f.svc.EnrollMany(ctx, EnrollInput{
		ContainerType: model.ContainerSubject,
		ContainerID:   f.subject,
		SemesterID:    f.activeSem,
		StudentIDs:    []uuid.UUID{student},
		Actor:         f.admin(),
	})
	require.NoError(t, err)

	other := uuid.New()
	_, err = f.svc.EnrollMany(ctx, EnrollInput{
		ContainerType: model.ContainerSubject,
		ContainerID:   f.subject,
		SemesterID:    f.activeSem,
		StudentIDs:    []uuid.UUID{other, student},
		Actor:         f.admin(),
	})
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	// nothing from the failed batch landed
	got, err := f.svc.ListByStudentAndSemester(ctx, other, f.activeSem)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOneSectionPerStudentPerSemester(t *testing.T) {
	f := newEnrollFixture()
	student := uuid.New()
	ctx := context.Background()

	otherSection := uuid.New()
	f.containers.rows[otherSection] = &ContainerInfo{ID: otherSection, Kind: model.ContainerSection, Name: "Curie", Detail: "11"}

	_, err := f.svc.EnrollMany(ctx, EnrollInput{
		ContainerType: model.ContainerSection,
		ContainerID:   f.section,
		SemesterID:    f.activeSem,
		StudentIDs:    []uuid.UUID{student},
		Actor:         f.admin(),
	})
	require.NoError(t, err)

	_, err = f.svc.EnrollMany(ctx, EnrollInput{
		ContainerType: model.ContainerSection,
		ContainerID:   otherSection,
		SemesterID:    f.activeSem,
		StudentIDs:    []uuid.UUID{student},
		Actor:         f.admin(),
	})
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
}

func TestMultipleSubjectEnrollmentsAllowed(t *testing.T) {
	f := newEnrollFixture()
	student := uuid.New()
	ctx := context.Background()

	otherSubject := uuid.New()
	f.containers.rows[otherSubject] = &ContainerInfo{ID: otherSubject, Kind: model.ContainerSubject, Name: "Earth Science", Detail: "core"}

	for _, subj := range []uuid.UUID{f.subject, otherSubject} {
		_, err := f.svc.EnrollMany(ctx, EnrollInput{
			ContainerType: model.ContainerSubject,
			ContainerID:   subj,
			SemesterID:    f.activeSem,
			StudentIDs:    []uuid.UUID{student},
			Actor:         f.admin(),
		})
		require.NoError(t, err)
	}

	got, err := f.svc.ListByStudentAndSemester(ctx, student, f.activeSem)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestTeacherCannotEnrollOutsideActiveSemester(t *testing.T) {
	f := newEnrollFixture()

	_, err := f.svc.EnrollMany(context.Background(), EnrollInput{
		ContainerType: model.ContainerSection,
		ContainerID:   f.section,
		SemesterID:    f.endedSem,
		StudentIDs:    []uuid.UUID{uuid.New()},
		Actor:         f.asTeacher(),
	})
	require.Error(t, err)
	assert.True(t, apperr.IsPrecondition(err))
}

func TestAdminCanEnrollInEndedSemester(t *testing.T) {
	f := newEnrollFixture()

	_, err := f.svc.EnrollMany(context.Background(), EnrollInput{
		ContainerType: model.ContainerSection,
		ContainerID:   f.section,
		SemesterID:    f.endedSem,
		StudentIDs:    []uuid.UUID{uuid.New()},
		Actor:         f.admin(),
	})
	assert.NoError(t, err)
}

func TestTeacherNeedsCurrentAssignment(t *testing.T) {
	f := newEnrollFixture()
	stranger := Actor{ID: uuid.New(), Role: constants.RoleTeacher}

	_, err := f.svc.EnrollMany(context.Background(), EnrollInput{
		ContainerType: model.ContainerSection,
		ContainerID:   f.section,
		SemesterID:    f.activeSem,
		StudentIDs:    []uuid.UUID{uuid.New()},
		Actor:         stranger,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsPrecondition(err))
}

func TestEnsureEnrolledIsIdempotent(t *testing.T) {
	f := newEnrollFixture()
	ctx := context.Background()
	s1, s2 := uuid.New(), uuid.New()

	rows, err := f.svc.EnrollMany(ctx, EnrollInput{
		ContainerType: model.ContainerSubject,
		ContainerID:   f.subject,
		SemesterID:    f.activeSem,
		StudentIDs:    []uuid.UUID{s1},
		Actor:         f.asTeacher(),
	})
	require.NoError(t, err)

	got, err := f.svc.EnsureEnrolled(ctx, EnrollInput{
		ContainerType: model.ContainerSubject,
		ContainerID:   f.subject,
		SemesterID:    f.activeSem,
		StudentIDs:    []uuid.UUID{s1, s2},
		Actor:         f.asTeacher(),
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, rows[0].EnrollmentID, got[s1])
	assert.NotEqual(t, uuid.Nil, got[s2])
}

func TestUnenrollGuards(t *testing.T) {
	f := newEnrollFixture()
	ctx := context.Background()
	student := uuid.New()

	rows, err := f.svc.EnrollMany(ctx, EnrollInput{
		ContainerType: model.ContainerSubject,
		ContainerID:   f.subject,
		SemesterID:    f.activeSem,
		StudentIDs:    []uuid.UUID{student},
		Actor:         f.admin(),
	})
	require.NoError(t, err)
	id := rows[0].EnrollmentID

	// grades recorded: removal blocked
	f.grades.graded[id] = true
	err = f.svc.Unenroll(ctx, id, f.admin())
	require.Error(t, err)
	assert.True(t, apperr.IsPrecondition(err))

	// no grades: removal allowed
	f.grades.graded[id] = false
	require.NoError(t, f.svc.Unenroll(ctx, id, f.admin()))

	_, err = f.svc.GetByID(ctx, id)
	assert.True(t, apperr.IsNotFound(err))
}

func TestUnenrollBlockedOutsideActiveSemester(t *testing.T) {
	f := newEnrollFixture()
	ctx := context.Background()

	rows, err := f.svc.EnrollMany(ctx, EnrollInput{
		ContainerType: model.ContainerSubject,
		ContainerID:   f.subject,
		SemesterID:    f.endedSem,
		StudentIDs:    []uuid.UUID{uuid.New()},
		Actor:         f.admin(),
	})
	require.NoError(t, err)

	err = f.svc.Unenroll(ctx, rows[0].EnrollmentID, f.admin())
	require.Error(t, err)
	assert.True(t, apperr.IsPrecondition(err))
}
