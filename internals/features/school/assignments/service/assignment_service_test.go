// file: internals/features/school/assignments/service/assignment_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/apperr"
	"schoolku_backend/internals/features/school/assignments/model"
)

type memAssignmentStore struct {
	rows map[uuid.UUID]*model.TeachingAssignmentModel
}

func newMemAssignmentStore() *memAssignmentStore {
	return &memAssignmentStore{rows: make(map[uuid.UUID]*model.TeachingAssignmentModel)}
}

func (s *memAssignmentStore) overlaps(m *model.TeachingAssignmentModel, exclude uuid.UUID) bool {
	for id, other := range s.rows {
		if id == exclude {
			continue
		}
		if other.TeachingAssignmentEntityID != m.TeachingAssignmentEntityID ||
			other.TeachingAssignmentPersonID != m.TeachingAssignmentPersonID {
			continue
		}
		if other.Overlaps(m.TeachingAssignmentStartAt, m.TeachingAssignmentEndAt) {
			return true
		}
	}
	return false
}

func (s *memAssignmentStore) Insert(_ context.Context, m *model.TeachingAssignmentModel) error {
	if s.overlaps(m, uuid.Nil) {
		return apperr.NewConflict("An overlapping assignment already exists for this pair")
	}
	cp := *m
	s.rows[m.TeachingAssignmentID] = &cp
	return nil
}

func (s *memAssignmentStore) UpdateExclusive(_ context.Context, m *model.TeachingAssignmentModel) error {
	if s.overlaps(m, m.TeachingAssignmentID) {
		return apperr.NewConflict("An overlapping assignment already exists for this pair")
	}
	cp := *m
	s.rows[m.TeachingAssignmentID] = &cp
	return nil
}

func (s *memAssignmentStore) GetByID(_ context.Context, id uuid.UUID) (*model.TeachingAssignmentModel, error) {
	m, ok := s.rows[id]
	if !ok {
		return nil, apperr.NewNotFound("Assignment")
	}
	cp := *m
	return &cp, nil
}

func (s *memAssignmentStore) FindCovering(_ context.Context, entityID, personID uuid.UUID, at time.Time) (*model.TeachingAssignmentModel, error) {
	for _, m := range s.rows {
		if m.TeachingAssignmentEntityID == entityID && m.TeachingAssignmentPersonID == personID && m.Covers(at) {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memAssignmentStore) ListByEntity(_ context.Context, entityID uuid.UUID, offset, limit int) ([]model.TeachingAssignmentModel, int64, error) {
	var out []model.TeachingAssignmentModel
	for _, m := range s.rows {
		if m.TeachingAssignmentEntityID == entityID {
			out = append(out, *m)
		}
	}
	return out, int64(len(out)), nil
}

func day(d int) time.Time {
	return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
}

func assignInput(entityID, personID uuid.UUID, start time.Time, end *time.Time) AssignInput {
	return AssignInput{
		EntityType: model.EntitySection,
		EntityID:   entityID,
		PersonID:   personID,
		StartAt:    start,
		EndAt:      end,
		ActorID:    uuid.New(),
	}
}

func TestAssignRejectsOverlap(t *testing.T) {
	svc := NewService(newMemAssignmentStore())
	ctx := context.Background()
	entity, person := uuid.New(), uuid.New()

	end := day(10)
	_, err := svc.Assign(ctx, assignInput(entity, person, day(1), &end))
	require.NoError(t, err)

	later := day(15)
	_, err = svc.Assign(ctx, assignInput(entity, person, day(5), &later))
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
}

func TestAssignTouchingBoundariesDoNotOverlap(t *testing.T) {
	svc := NewService(newMemAssignmentStore())
	ctx := context.Background()
	entity, person := uuid.New(), uuid.New()

	end := day(10)
	_, err := svc.Assign(ctx, assignInput(entity, person, day(1), &end))
	require.NoError(t, err)

	// [1,10) then [10,20): the shared boundary belongs to the second only
	end2 := day(20)
	_, err = svc.Assign(ctx, assignInput(entity, person, day(10), &end2))
	assert.NoError(t, err)
}

func TestAssignOpenEndedBlocksEverythingAfter(t *testing.T) {
	svc := NewService(newMemAssignmentStore())
	ctx := context.Background()
	entity, person := uuid.New(), uuid.New()

	_, err := svc.Assign(ctx, assignInput(entity, person, day(5), nil))
	require.NoError(t, err)

	end := day(25)
	_, err = svc.Assign(ctx, assignInput(entity, person, day(20), &end))
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	// before the open-ended start is still free
	end2 := day(5)
	_, err = svc.Assign(ctx, assignInput(entity, person, day(1), &end2))
	assert.NoError(t, err)
}

func TestAssignDifferentPairsDoNotConflict(t *testing.T) {
	svc := NewService(newMemAssignmentStore())
	ctx := context.Background()
	entity := uuid.New()

	_, err := svc.Assign(ctx, assignInput(entity, uuid.New(), day(1), nil))
	require.NoError(t, err)

	// same entity, different person
	_, err = svc.Assign(ctx, assignInput(entity, uuid.New(), day(1), nil))
	assert.NoError(t, err)
}

func TestAssignRejectsInvertedInterval(t *testing.T) {
	svc := NewService(newMemAssignmentStore())
	ctx := context.Background()

	end := day(1)
	_, err := svc.Assign(ctx, assignInput(uuid.New(), uuid.New(), day(10), &end))
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	// zero-length interval is rejected too
	same := day(10)
	_, err = svc.Assign(ctx, assignInput(uuid.New(), uuid.New(), day(10), &same))
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestReassignExcludesItselfFromOverlapCheck(t *testing.T) {
	svc := NewService(newMemAssignmentStore())
	ctx := context.Background()
	entity, person := uuid.New(), uuid.New()

	end := day(10)
	m, err := svc.Assign(ctx, assignInput(entity, person, day(1), &end))
	require.NoError(t, err)

	// widening its own window must not collide with itself
	wider := day(15)
	in := assignInput(entity, person, day(1), &wider)
	got, err := svc.Reassign(ctx, m.TeachingAssignmentID, in)
	require.NoError(t, err)
	assert.Equal(t, day(15), *got.TeachingAssignmentEndAt)
}

func TestFindCurrent(t *testing.T) {
	svc := NewService(newMemAssignmentStore())
	ctx := context.Background()
	entity, person := uuid.New(), uuid.New()

	end := day(10)
	m, err := svc.Assign(ctx, assignInput(entity, person, day(1), &end))
	require.NoError(t, err)

	got, err := svc.FindCurrent(ctx, entity, person, day(5))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, m.TeachingAssignmentID, got.TeachingAssignmentID)

	// start is inclusive, end is exclusive
	got, err = svc.FindCurrent(ctx, entity, person, day(1))
	require.NoError(t, err)
	assert.NotNil(t, got)

	got, err = svc.FindCurrent(ctx, entity, person, day(10))
	require.NoError(t, err)
	assert.Nil(t, got)

	ok, err := svc.HasCurrentAssignment(ctx, entity, person, day(3))
	require.NoError(t, err)
	assert.True(t, ok)
}
