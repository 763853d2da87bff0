// file: internals/features/school/assignments/repository/assignment_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/apperr"
	"schoolku_backend/internals/features/school/assignments/model"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

const overlapMsg = "An overlapping assignment already exists for this pair"

// Insert is a conditional write: the row lands only if no assignment for the
// same (entity, person) pair overlaps [start_at, end_at). Overlap for
// half-open ranges with a nil end treated as +infinity:
//
//	existing.start_at < COALESCE(new.end_at, 'infinity')
//	AND (existing.end_at IS NULL OR existing.end_at > new.start_at)
func (r *AssignmentRepository) Insert(ctx context.Context, m *model.TeachingAssignmentModel) error {
	if m.TeachingAssignmentID == uuid.Nil {
		m.TeachingAssignmentID = uuid.New()
	}
	res := r.db.WithContext(ctx).Exec(`
		INSERT INTO teaching_assignments (
			teaching_assignment_id,
			teaching_assignment_entity_type,
			teaching_assignment_entity_id,
			teaching_assignment_person_id,
			teaching_assignment_start_at,
			teaching_assignment_end_at,
			teaching_assignment_created_by
		)
		SELECT ?, ?, ?, ?, ?, ?, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM teaching_assignments
			WHERE teaching_assignment_entity_id = ?
			  AND teaching_assignment_person_id = ?
			  AND teaching_assignment_start_at < COALESCE(?::timestamptz, 'infinity'::timestamptz)
			  AND (teaching_assignment_end_at IS NULL OR teaching_assignment_end_at > ?)
		)`,
		m.TeachingAssignmentID,
		m.TeachingAssignmentEntityType,
		m.TeachingAssignmentEntityID,
		m.TeachingAssignmentPersonID,
		m.TeachingAssignmentStartAt,
		m.TeachingAssignmentEndAt,
		m.TeachingAssignmentCreatedBy,
		m.TeachingAssignmentEntityID,
		m.TeachingAssignmentPersonID,
		m.TeachingAssignmentEndAt,
		m.TeachingAssignmentStartAt,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NewConflict(overlapMsg)
	}
	return nil
}

// UpdateExclusive rewrites the row under the same overlap condition,
// excluding the row itself.
func (r *AssignmentRepository) UpdateExclusive(ctx context.Context, m *model.TeachingAssignmentModel) error {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE teaching_assignments SET
			teaching_assignment_entity_type = ?,
			teaching_assignment_entity_id   = ?,
			teaching_assignment_person_id   = ?,
			teaching_assignment_start_at    = ?,
			teaching_assignment_end_at      = ?,
			teaching_assignment_updated_by  = ?,
			teaching_assignment_updated_at  = now()
		WHERE teaching_assignment_id = ?
		  AND NOT EXISTS (
			SELECT 1 FROM teaching_assignments
			WHERE teaching_assignment_entity_id = ?
			  AND teaching_assignment_person_id = ?
			  AND teaching_assignment_id <> ?
			  AND teaching_assignment_start_at < COALESCE(?::timestamptz, 'infinity'::timestamptz)
			  AND (teaching_assignment_end_at IS NULL OR teaching_assignment_end_at > ?)
		)`,
		m.TeachingAssignmentEntityType,
		m.TeachingAssignmentEntityID,
		m.TeachingAssignmentPersonID,
		m.TeachingAssignmentStartAt,
		m.TeachingAssignmentEndAt,
		m.TeachingAssignmentUpdatedBy,
		m.TeachingAssignmentID,
		m.TeachingAssignmentEntityID,
		m.TeachingAssignmentPersonID,
		m.TeachingAssignmentID,
		m.TeachingAssignmentEndAt,
		m.TeachingAssignmentStartAt,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// the id exists (caller loaded it), so zero rows means overlap
		return apperr.NewConflict(overlapMsg)
	}
	return nil
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TeachingAssignmentModel, error) {
	var m model.TeachingAssignmentModel
	err := r.db.WithContext(ctx).
		Where("teaching_assignment_id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("Assignment")
		}
		return nil, err
	}
	return &m, nil
}

func (r *AssignmentRepository) FindCovering(ctx context.Context, entityID, personID uuid.UUID, at time.Time) (*model.TeachingAssignmentModel, error) {
	var m model.TeachingAssignmentModel
	err := r.db.WithContext(ctx).
		Where("teaching_assignment_entity_id = ? AND teaching_assignment_person_id = ?", entityID, personID).
		Where("teaching_assignment_start_at <= ?", at).
		Where("(teaching_assignment_end_at IS NULL OR teaching_assignment_end_at > ?)", at).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *AssignmentRepository) ListByEntity(ctx context.Context, entityID uuid.UUID, offset, limit int) ([]model.TeachingAssignmentModel, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.TeachingAssignmentModel{}).
		Where("teaching_assignment_entity_id = ?", entityID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.TeachingAssignmentModel
	err := q.
		Order("teaching_assignment_start_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
