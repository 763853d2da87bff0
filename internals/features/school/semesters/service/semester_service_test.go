// file: internals/features/school/semesters/service/semester_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/apperr"
	"schoolku_backend/internals/features/school/semesters/model"
)

type memSemesterStore struct {
	rows map[uuid.UUID]*model.SemesterModel
}

func newMemSemesterStore() *memSemesterStore {
	return &memSemesterStore{rows: make(map[uuid.UUID]*model.SemesterModel)}
}

func (s *memSemesterStore) Create(_ context.Context, m *model.SemesterModel) error {
	if m.SemesterID == uuid.Nil {
		m.SemesterID = uuid.New()
	}
	cp := *m
	s.rows[m.SemesterID] = &cp
	return nil
}

func (s *memSemesterStore) Update(_ context.Context, m *model.SemesterModel) error {
	cp := *m
	s.rows[m.SemesterID] = &cp
	return nil
}

func (s *memSemesterStore) GetByID(_ context.Context, id uuid.UUID) (*model.SemesterModel, error) {
	m, ok := s.rows[id]
	if !ok {
		return nil, apperr.NewNotFound("Semester")
	}
	cp := *m
	return &cp, nil
}

func (s *memSemesterStore) GetActive(_ context.Context) (*model.SemesterModel, error) {
	for _, m := range s.rows {
		if m.SemesterStatus == model.StatusActive {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memSemesterStore) ExistsSchoolYearTerm(_ context.Context, startYear, endYear, term int, exclude uuid.UUID) (bool, error) {
	for id, m := range s.rows {
		if id == exclude {
			continue
		}
		if m.SemesterSyStartYear == startYear && m.SemesterSyEndYear == endYear && m.SemesterTerm == term {
			return true, nil
		}
	}
	return false, nil
}

func (s *memSemesterStore) ExistsActive(_ context.Context, exclude uuid.UUID) (bool, error) {
	for id, m := range s.rows {
		if id == exclude {
			continue
		}
		if m.SemesterStatus == model.StatusActive {
			return true, nil
		}
	}
	return false, nil
}

func (s *memSemesterStore) List(_ context.Context, offset, limit int) ([]model.SemesterModel, int64, error) {
	out := make([]model.SemesterModel, 0, len(s.rows))
	for _, m := range s.rows {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func newSemesterService() (*Service, *memSemesterStore) {
	store := newMemSemesterStore()
	return NewService(store), store
}

func TestCreateSemester(t *testing.T) {
	svc, _ := newSemesterService()

	m, err := svc.Create(context.Background(), CreateInput{
		SyStartYear: 2025, SyEndYear: 2026, Term: 1, Status: model.StatusUpcoming, CreatedBy: uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, 2025, m.SemesterSyStartYear)
	assert.Equal(t, model.StatusUpcoming, m.SemesterStatus)
}

func TestCreateSemesterRejectsDuplicateYearTerm(t *testing.T) {
	svc, _ := newSemesterService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{SyStartYear: 2025, SyEndYear: 2026, Term: 1, Status: model.StatusUpcoming})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{SyStartYear: 2025, SyEndYear: 2026, Term: 1, Status: model.StatusEnded})
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	// same school year, other term is fine
	_, err = svc.Create(ctx, CreateInput{SyStartYear: 2025, SyEndYear: 2026, Term: 2, Status: model.StatusUpcoming})
	assert.NoError(t, err)
}

func TestSingleActiveSemester(t *testing.T) {
	svc, _ := newSemesterService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{SyStartYear: 2025, SyEndYear: 2026, Term: 1, Status: model.StatusActive})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{SyStartYear: 2025, SyEndYear: 2026, Term: 2, Status: model.StatusActive})
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	second, err := svc.Create(ctx, CreateInput{SyStartYear: 2025, SyEndYear: 2026, Term: 2, Status: model.StatusUpcoming})
	require.NoError(t, err)

	// promoting the second while the first is still active must fail too
	_, err = svc.Update(ctx, second.SemesterID, UpdateInput{
		SyStartYear: 2025, SyEndYear: 2026, Term: 2, Status: model.StatusActive,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
}

func TestActivateAfterEndingPrevious(t *testing.T) {
	svc, _ := newSemesterService()
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateInput{SyStartYear: 2025, SyEndYear: 2026, Term: 1, Status: model.StatusActive})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateInput{SyStartYear: 2025, SyEndYear: 2026, Term: 2, Status: model.StatusUpcoming})
	require.NoError(t, err)

	_, err = svc.Update(ctx, first.SemesterID, UpdateInput{
		SyStartYear: 2025, SyEndYear: 2026, Term: 1, Status: model.StatusEnded,
	})
	require.NoError(t, err)

	got, err := svc.Update(ctx, second.SemesterID, UpdateInput{
		SyStartYear: 2025, SyEndYear: 2026, Term: 2, Status: model.StatusActive,
	})
	require.NoError(t, err)
	assert.True(t, got.IsActive())

	active, err := svc.GetActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.SemesterID, active.SemesterID)
}

func TestRequireActive(t *testing.T) {
	svc, _ := newSemesterService()
	ctx := context.Background()

	_, err := svc.RequireActive(ctx)
	require.Error(t, err)
	assert.True(t, apperr.IsPrecondition(err))

	_, err = svc.Create(ctx, CreateInput{SyStartYear: 2025, SyEndYear: 2026, Term: 1, Status: model.StatusActive})
	require.NoError(t, err)

	m, err := svc.RequireActive(ctx)
	require.NoError(t, err)
	assert.True(t, m.IsActive())
}

func TestSemesterFieldValidation(t *testing.T) {
	svc, _ := newSemesterService()
	ctx := context.Background()

	cases := []CreateInput{
		{SyStartYear: 0, SyEndYear: 2026, Term: 1, Status: model.StatusUpcoming},
		{SyStartYear: 2026, SyEndYear: 2025, Term: 1, Status: model.StatusUpcoming},
		{SyStartYear: 2025, SyEndYear: 2026, Term: 3, Status: model.StatusUpcoming},
		{SyStartYear: 2025, SyEndYear: 2026, Term: 1, Status: "archived"},
	}
	for _, in := range cases {
		_, err := svc.Create(ctx, in)
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
	}
}
