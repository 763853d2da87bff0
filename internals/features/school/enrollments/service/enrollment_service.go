// file: internals/features/school/enrollments/service/enrollment_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/apperr"
	"schoolku_backend/internals/features/school/enrollments/model"
	semesterModel "schoolku_backend/internals/features/school/semesters/model"
)

/* ============================================
   Dependencies
============================================ */

type Store interface {
	// CreateBatch inserts all rows in one transaction; a uniqueness violation
	// on any row fails the whole batch with an apperr conflict.
	CreateBatch(ctx context.Context, rows []model.EnrollmentModel) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.EnrollmentModel, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListExisting returns the subset of studentIDs already enrolled in the
	// (container, semester) pair.
	ListExisting(ctx context.Context, containerID, semesterID uuid.UUID, studentIDs []uuid.UUID) ([]model.EnrollmentModel, error)
	ExistsSectionEnrollment(ctx context.Context, studentID, semesterID uuid.UUID) (bool, error)
	ListByContainerAndSemester(ctx context.Context, containerID, semesterID uuid.UUID, offset, limit int) ([]model.EnrollmentModel, int64, error)
	ListByStudentAndSemester(ctx context.Context, studentID, semesterID uuid.UUID) ([]model.EnrollmentModel, error)
}

type SemesterReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*semesterModel.SemesterModel, error)
}

// ContainerInfo is what the enrollment write needs to know about a section
// or subject at snapshot time.
type ContainerInfo struct {
	ID     uuid.UUID
	Kind   string // section | subject
	Name   string
	Detail string // grade level for sections, subject code for subjects
}

type ContainerReader interface {
	Get(ctx context.Context, kind string, id uuid.UUID) (*ContainerInfo, error)
}

type AssignmentChecker interface {
	HasCurrentAssignment(ctx context.Context, entityID, personID uuid.UUID, at time.Time) (bool, error)
}

type GradeChecker interface {
	HasGrades(ctx context.Context, enrollmentID uuid.UUID) (bool, error)
}

type Service struct {
	store       Store
	semesters   SemesterReader
	containers  ContainerReader
	assignments AssignmentChecker
	grades      GradeChecker
}

func NewService(store Store, sem SemesterReader, con ContainerReader, asg AssignmentChecker, gr GradeChecker) *Service {
	return &Service{
		store:       store,
		semesters:   sem,
		containers:  con,
		assignments: asg,
		grades:      gr,
	}
}

/* ============================================
   Inputs
============================================ */

type Actor struct {
	ID      uuid.UUID
	Role    string
	IsAdmin bool
}

type EnrollInput struct {
	ContainerType string
	ContainerID   uuid.UUID
	SemesterID    uuid.UUID
	StudentIDs    []uuid.UUID
	Actor         Actor
}

func (in *EnrollInput) validate() error {
	if !model.ValidContainerType(in.ContainerType) {
		return apperr.NewValidation("container_type must be section or subject")
	}
	if in.ContainerID == uuid.Nil || in.SemesterID == uuid.Nil {
		return apperr.NewValidation("container_id and semester_id are required")
	}
	if len(in.StudentIDs) == 0 {
		return apperr.NewValidation("student_ids must not be empty")
	}
	seen := make(map[uuid.UUID]struct{}, len(in.StudentIDs))
	for _, id := range in.StudentIDs {
		if id == uuid.Nil {
			return apperr.NewValidation("student_ids must not contain empty ids")
		}
		if _, dup := seen[id]; dup {
			return apperr.NewValidation("student_ids must not contain duplicates")
		}
		seen[id] = struct{}{}
	}
	return nil
}

/* ============================================
   EnrollMany
============================================ */

// EnrollMany enrolls every student or none of them. Teachers may only touch
// the active semester and only containers they currently hold; admins are
// exempt from both checks.
func (s *Service) EnrollMany(ctx context.Context, in EnrollInput) ([]model.EnrollmentModel, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	sem, err := s.authorize(ctx, in)
	if err != nil {
		return nil, err
	}

	con, err := s.containers.Get(ctx, in.ContainerType, in.ContainerID)
	if err != nil {
		return nil, err
	}

	if err := s.checkDuplicates(ctx, in, sem); err != nil {
		return nil, err
	}

	rows := buildRows(in, sem, con)
	if err := s.store.CreateBatch(ctx, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// EnsureEnrolled is the idempotent variant used by the grade workflow:
// already-enrolled students are kept, missing ones are enrolled, and the
// result maps every student to their enrollment id.
func (s *Service) EnsureEnrolled(ctx context.Context, in EnrollInput) (map[uuid.UUID]uuid.UUID, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	sem, err := s.authorize(ctx, in)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.ListExisting(ctx, in.ContainerID, in.SemesterID, in.StudentIDs)
	if err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]uuid.UUID, len(in.StudentIDs))
	for i := range existing {
		out[existing[i].EnrollmentStudentID] = existing[i].EnrollmentID
	}

	var missing []uuid.UUID
	for _, id := range in.StudentIDs {
		if _, ok := out[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	con, err := s.containers.Get(ctx, in.ContainerType, in.ContainerID)
	if err != nil {
		return nil, err
	}

	sub := in
	sub.StudentIDs = missing
	if in.ContainerType == model.ContainerSection {
		if err := s.checkSectionExclusivity(ctx, sub); err != nil {
			return nil, err
		}
	}

	rows := buildRows(sub, sem, con)
	if err := s.store.CreateBatch(ctx, rows); err != nil {
		return nil, err
	}
	for i := range rows {
		out[rows[i].EnrollmentStudentID] = rows[i].EnrollmentID
	}
	return out, nil
}

/* ============================================
   Unenroll
============================================ */

func (s *Service) Unenroll(ctx context.Context, id uuid.UUID, actor Actor) error {
	m, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}

	sem, err := s.semesters.GetByID(ctx, m.EnrollmentSemesterID)
	if err != nil {
		return err
	}
	if !sem.IsActive() {
		return apperr.NewPrecondition("Enrollment can only be removed during the active semester")
	}

	if !actor.IsAdmin {
		ok, err := s.assignments.HasCurrentAssignment(ctx, m.EnrollmentContainerID, actor.ID, time.Now())
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NewPrecondition(containerAuthMsg(m.EnrollmentContainerType))
		}
	}

	hasGrades, err := s.grades.HasGrades(ctx, id)
	if err != nil {
		return err
	}
	if hasGrades {
		return apperr.NewPrecondition("Enrollment has recorded grades and cannot be removed")
	}

	return s.store.Delete(ctx, id)
}

/* ============================================
   Reads
============================================ */

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*model.EnrollmentModel, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) ListByContainerAndSemester(ctx context.Context, containerID, semesterID uuid.UUID, offset, limit int) ([]model.EnrollmentModel, int64, error) {
	return s.store.ListByContainerAndSemester(ctx, containerID, semesterID, offset, limit)
}

func (s *Service) ListByStudentAndSemester(ctx context.Context, studentID, semesterID uuid.UUID) ([]model.EnrollmentModel, error) {
	return s.store.ListByStudentAndSemester(ctx, studentID, semesterID)
}

/* ============================================
   Internals
============================================ */

func (s *Service) authorize(ctx context.Context, in EnrollInput) (*semesterModel.SemesterModel, error) {
	sem, err := s.semesters.GetByID(ctx, in.SemesterID)
	if err != nil {
		return nil, err
	}

	if in.Actor.IsAdmin {
		return sem, nil
	}

	if !sem.IsActive() {
		return nil, apperr.NewPrecondition("Enrollment changes are only allowed in the active semester")
	}
	ok, err := s.assignments.HasCurrentAssignment(ctx, in.ContainerID, in.Actor.ID, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NewPrecondition(containerAuthMsg(in.ContainerType))
	}
	return sem, nil
}

func (s *Service) checkDuplicates(ctx context.Context, in EnrollInput, sem *semesterModel.SemesterModel) error {
	existing, err := s.store.ListExisting(ctx, in.ContainerID, in.SemesterID, in.StudentIDs)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return apperr.NewConflict(fmt.Sprintf(
			"Student %s is already enrolled in this %s for this semester",
			existing[0].EnrollmentStudentID, in.ContainerType,
		))
	}
	if in.ContainerType == model.ContainerSection {
		return s.checkSectionExclusivity(ctx, in)
	}
	return nil
}

func (s *Service) checkSectionExclusivity(ctx context.Context, in EnrollInput) error {
	for _, studentID := range in.StudentIDs {
		taken, err := s.store.ExistsSectionEnrollment(ctx, studentID, in.SemesterID)
		if err != nil {
			return err
		}
		if taken {
			return apperr.NewConflict(fmt.Sprintf(
				"Student %s already belongs to a section for this semester", studentID,
			))
		}
	}
	return nil
}

func buildRows(in EnrollInput, sem *semesterModel.SemesterModel, con *ContainerInfo) []model.EnrollmentModel {
	actor := in.Actor.ID
	rows := make([]model.EnrollmentModel, 0, len(in.StudentIDs))
	for _, studentID := range in.StudentIDs {
		rows = append(rows, model.EnrollmentModel{
			EnrollmentID:            uuid.New(),
			EnrollmentContainerType: in.ContainerType,
			EnrollmentContainerID:   in.ContainerID,
			EnrollmentSemesterID:    in.SemesterID,
			EnrollmentStudentID:     studentID,

			EnrollmentContainerNameSnapshot:   con.Name,
			EnrollmentContainerDetailSnapshot: con.Detail,
			EnrollmentSyStartSnapshot:         sem.SemesterSyStartYear,
			EnrollmentSyEndSnapshot:           sem.SemesterSyEndYear,
			EnrollmentTermSnapshot:            sem.SemesterTerm,

			EnrollmentCreatedBy: &actor,
		})
	}
	return rows
}

func containerAuthMsg(containerType string) string {
	if containerType == model.ContainerSection {
		return "You are not currently assigned to this section"
	}
	return "You are not currently assigned to this subject"
}
