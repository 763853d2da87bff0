// file: internals/features/school/assignments/service/assignment_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/apperr"
	"schoolku_backend/internals/features/school/assignments/model"
)

/* ============================================
   Store

   Overlap is not expressible as a uniqueness
   constraint, so Insert/UpdateExclusive must be
   server-side conditional writes: persist only if
   no overlapping row exists for the same
   (entity, person) pair, and fail with a conflict
   otherwise. That single statement is what closes
   the check-then-write race.
============================================ */

type Store interface {
	// Insert persists m unless an overlapping assignment exists for the same
	// (entity_id, person_id) pair; overlap fails with an apperr conflict.
	Insert(ctx context.Context, m *model.TeachingAssignmentModel) error
	// UpdateExclusive rewrites the row identified by m's id with the same
	// overlap rule, excluding the row itself from the check.
	UpdateExclusive(ctx context.Context, m *model.TeachingAssignmentModel) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.TeachingAssignmentModel, error)
	// FindCovering returns the assignment whose [start, end) range covers at,
	// or (nil, nil) when there is none.
	FindCovering(ctx context.Context, entityID, personID uuid.UUID, at time.Time) (*model.TeachingAssignmentModel, error)
	ListByEntity(ctx context.Context, entityID uuid.UUID, offset, limit int) ([]model.TeachingAssignmentModel, int64, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

/* ============================================
   Inputs
============================================ */

type AssignInput struct {
	EntityType string
	EntityID   uuid.UUID
	PersonID   uuid.UUID
	StartAt    time.Time
	EndAt      *time.Time
	ActorID    uuid.UUID
}

func (in *AssignInput) validate() error {
	if !model.ValidEntityType(in.EntityType) {
		return apperr.NewValidation("entity_type must be section or subject")
	}
	if in.EntityID == uuid.Nil || in.PersonID == uuid.Nil {
		return apperr.NewValidation("entity_id and person_id are required")
	}
	if in.StartAt.IsZero() {
		return apperr.NewValidation("start_at is required")
	}
	// zero-length and inverted intervals are rejected here, before the
	// overlap algorithm ever sees them
	if in.EndAt != nil && !in.EndAt.After(in.StartAt) {
		return apperr.NewValidation("end_at must be after start_at")
	}
	return nil
}

/* ============================================
   Operations
============================================ */

func (s *Service) Assign(ctx context.Context, in AssignInput) (*model.TeachingAssignmentModel, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	actor := in.ActorID
	m := &model.TeachingAssignmentModel{
		TeachingAssignmentID:         uuid.New(),
		TeachingAssignmentEntityType: in.EntityType,
		TeachingAssignmentEntityID:   in.EntityID,
		TeachingAssignmentPersonID:   in.PersonID,
		TeachingAssignmentStartAt:    in.StartAt,
		TeachingAssignmentEndAt:      in.EndAt,
		TeachingAssignmentCreatedBy:  &actor,
	}
	if err := s.store.Insert(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Reassign(ctx context.Context, id uuid.UUID, in AssignInput) (*model.TeachingAssignmentModel, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	m, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	actor := in.ActorID
	m.TeachingAssignmentEntityType = in.EntityType
	m.TeachingAssignmentEntityID = in.EntityID
	m.TeachingAssignmentPersonID = in.PersonID
	m.TeachingAssignmentStartAt = in.StartAt
	m.TeachingAssignmentEndAt = in.EndAt
	m.TeachingAssignmentUpdatedBy = &actor

	if err := s.store.UpdateExclusive(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// FindCurrent returns the assignment covering at, or (nil, nil) when the
// person holds no live assignment over the entity.
func (s *Service) FindCurrent(ctx context.Context, entityID, personID uuid.UUID, at time.Time) (*model.TeachingAssignmentModel, error) {
	return s.store.FindCovering(ctx, entityID, personID, at)
}

// HasCurrentAssignment is the authorization predicate dependent components
// use ("is this teacher currently assigned to this section/subject?").
func (s *Service) HasCurrentAssignment(ctx context.Context, entityID, personID uuid.UUID, at time.Time) (bool, error) {
	m, err := s.store.FindCovering(ctx, entityID, personID, at)
	if err != nil {
		return false, err
	}
	return m != nil, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*model.TeachingAssignmentModel, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) ListByEntity(ctx context.Context, entityID uuid.UUID, offset, limit int) ([]model.TeachingAssignmentModel, int64, error) {
	return s.store.ListByEntity(ctx, entityID, offset, limit)
}
