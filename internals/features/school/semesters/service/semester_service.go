// file: internals/features/school/semesters/service/semester_service.go
package service

import (
	"context"

	"github.com/google/uuid"

	"schoolku_backend/internals/apperr"
	"schoolku_backend/internals/features/school/semesters/model"
)

/* ============================================
   Store

   The compound unique indexes behind Create/Update
   (school-year+term, and the single-active partial
   index) are the real guards; Store implementations
   must surface their violations as apperr conflicts
   so concurrent writers get the same answer as the
   pre-checks below.
============================================ */

type Store interface {
	Create(ctx context.Context, m *model.SemesterModel) error
	Update(ctx context.Context, m *model.SemesterModel) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.SemesterModel, error)
	// GetActive returns (nil, nil) when no semester is active.
	GetActive(ctx context.Context) (*model.SemesterModel, error)
	ExistsSchoolYearTerm(ctx context.Context, startYear, endYear, term int, exclude uuid.UUID) (bool, error)
	ExistsActive(ctx context.Context, exclude uuid.UUID) (bool, error)
	List(ctx context.Context, offset, limit int) ([]model.SemesterModel, int64, error)
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

type CreateInput struct {
	SyStartYear int
	SyEndYear   int
	Term        int
	Status      string
	CreatedBy   uuid.UUID
}

type UpdateInput struct {
	SyStartYear int
	SyEndYear   int
	Term        int
	Status      string
	UpdatedBy   uuid.UUID
}

func validateFields(startYear, endYear, term int, status string) error {
	if startYear <= 0 || endYear <= 0 {
		return apperr.NewValidation("school year is required")
	}
	if endYear < startYear {
		return apperr.NewValidation("sy_end_year must not be before sy_start_year")
	}
	if !model.ValidTerm(term) {
		return apperr.NewValidation("term must be 1 or 2")
	}
	if !model.ValidStatus(status) {
		return apperr.NewValidation("status must be one of upcoming, active, ended")
	}
	return nil
}

/* ============================================
   Operations
============================================ */

func (s *Service) Create(ctx context.Context, in CreateInput) (*model.SemesterModel, error) {
	if err := validateFields(in.SyStartYear, in.SyEndYear, in.Term, in.Status); err != nil {
		return nil, err
	}

	exists, err := s.store.ExistsSchoolYearTerm(ctx, in.SyStartYear, in.SyEndYear, in.Term, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.NewConflict("Semester already exists")
	}

	if in.Status == model.StatusActive {
		activeExists, err := s.store.ExistsActive(ctx, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if activeExists {
			return nil, apperr.NewConflict(`Semester with status "active" already exists`)
		}
	}

	createdBy := in.CreatedBy
	m := &model.SemesterModel{
		SemesterSyStartYear: in.SyStartYear,
		SemesterSyEndYear:   in.SyEndYear,
		SemesterTerm:        in.Term,
		SemesterStatus:      in.Status,
		SemesterCreatedBy:   &createdBy,
	}
	if err := s.store.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*model.SemesterModel, error) {
	if err := validateFields(in.SyStartYear, in.SyEndYear, in.Term, in.Status); err != nil {
		return nil, err
	}

	m, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.store.ExistsSchoolYearTerm(ctx, in.SyStartYear, in.SyEndYear, in.Term, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.NewConflict("Semester already exists")
	}

	if in.Status == model.StatusActive {
		activeExists, err := s.store.ExistsActive(ctx, id)
		if err != nil {
			return nil, err
		}
		if activeExists {
			return nil, apperr.NewConflict(`Semester with status "active" already exists`)
		}
	}

	updatedBy := in.UpdatedBy
	m.SemesterSyStartYear = in.SyStartYear
	m.SemesterSyEndYear = in.SyEndYear
	m.SemesterTerm = in.Term
	m.SemesterStatus = in.Status
	m.SemesterUpdatedBy = &updatedBy

	if err := s.store.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*model.SemesterModel, error) {
	return s.store.GetByID(ctx, id)
}

// GetActive returns the single active semester, or (nil, nil) when there is
// none. This is the temporal anchor the other school components consume.
func (s *Service) GetActive(ctx context.Context) (*model.SemesterModel, error) {
	return s.store.GetActive(ctx)
}

// RequireActive is GetActive but failing with a precondition error when no
// semester is active.
func (s *Service) RequireActive(ctx context.Context) (*model.SemesterModel, error) {
	m, err := s.store.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperr.NewPrecondition("There is no active semester at the moment")
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, offset, limit int) ([]model.SemesterModel, int64, error) {
	return s.store.List(ctx, offset, limit)
}
