// file: internals/features/school/semesters/repository/semester_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/apperr"
	database "schoolku_backend/internals/databases"
	"schoolku_backend/internals/features/school/semesters/model"
)

type SemesterRepository struct {
	db *gorm.DB
}

func NewSemesterRepository(db *gorm.DB) *SemesterRepository {
	return &SemesterRepository{db: db}
}

func (r *SemesterRepository) translate(err error) error {
	if database.IsUniqueViolation(err) {
		// either uq_semesters_school_year_term or uq_semesters_one_active
		return apperr.WrapConflict("Semester already exists", err)
	}
	return err
}

func (r *SemesterRepository) Create(ctx context.Context, m *model.SemesterModel) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return r.translate(err)
	}
	return nil
}

func (r *SemesterRepository) Update(ctx context.Context, m *model.SemesterModel) error {
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return r.translate(err)
	}
	return nil
}

func (r *SemesterRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.SemesterModel, error) {
	var m model.SemesterModel
	err := r.db.WithContext(ctx).
		Where("semester_id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("Semester")
		}
		return nil, err
	}
	return &m, nil
}

func (r *SemesterRepository) GetActive(ctx context.Context) (*model.SemesterModel, error) {
	var m model.SemesterModel
	err := r.db.WithContext(ctx).
		Where("semester_status = ?", model.StatusActive).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *SemesterRepository) ExistsSchoolYearTerm(ctx context.Context, startYear, endYear, term int, exclude uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.SemesterModel{}).
		Where("semester_sy_start_year = ? AND semester_sy_end_year = ? AND semester_term = ?", startYear, endYear, term)
	if exclude != uuid.Nil {
		q = q.Where("semester_id <> ?", exclude)
	}
	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *SemesterRepository) ExistsActive(ctx context.Context, exclude uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.SemesterModel{}).
		Where("semester_status = ?", model.StatusActive)
	if exclude != uuid.Nil {
		q = q.Where("semester_id <> ?", exclude)
	}
	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *SemesterRepository) List(ctx context.Context, offset, limit int) ([]model.SemesterModel, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.SemesterModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.SemesterModel
	err := r.db.WithContext(ctx).
		Order("semester_sy_start_year DESC, semester_term DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
