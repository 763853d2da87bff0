// file: internals/features/school/enrollments/repository/enrollment_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/apperr"
	database "schoolku_backend/internals/databases"
	"schoolku_backend/internals/features/school/enrollments/model"
)

type EnrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) translate(err error) error {
	if err == nil {
		return nil
	}
	if database.IsUniqueViolation(err) {
		return apperr.WrapConflict("Student is already enrolled for this semester", err)
	}
	return err
}

func (r *EnrollmentRepository) CreateBatch(ctx context.Context, rows []model.EnrollmentModel) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rows).Error; err != nil {
			return r.translate(err)
		}
		return nil
	})
}

func (r *EnrollmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.EnrollmentModel, error) {
	var m model.EnrollmentModel
	err := r.db.WithContext(ctx).
		Where("enrollment_id = ?", id).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NewNotFound("Enrollment")
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *EnrollmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("enrollment_id = ?", id).
		Delete(&model.EnrollmentModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NewNotFound("Enrollment")
	}
	return nil
}

func (r *EnrollmentRepository) ListExisting(ctx context.Context, containerID, semesterID uuid.UUID, studentIDs []uuid.UUID) ([]model.EnrollmentModel, error) {
	var rows []model.EnrollmentModel
	err := r.db.WithContext(ctx).
		Where("enrollment_container_id = ? AND enrollment_semester_id = ? AND enrollment_student_id IN ?",
			containerID, semesterID, studentIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *EnrollmentRepository) ExistsSectionEnrollment(ctx context.Context, studentID, semesterID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.EnrollmentModel{}).
		Where("enrollment_student_id = ? AND enrollment_semester_id = ? AND enrollment_container_type = ?",
			studentID, semesterID, model.ContainerSection).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *EnrollmentRepository) ListByContainerAndSemester(ctx context.Context, containerID, semesterID uuid.UUID, offset, limit int) ([]model.EnrollmentModel, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&model.EnrollmentModel{}).
		Where("enrollment_container_id = ? AND enrollment_semester_id = ?", containerID, semesterID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.EnrollmentModel
	err := q.
		Order("enrollment_created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *EnrollmentRepository) ListByStudentAndSemester(ctx context.Context, studentID, semesterID uuid.UUID) ([]model.EnrollmentModel, error) {
	var rows []model.EnrollmentModel
	err := r.db.WithContext(ctx).
		Where("enrollment_student_id = ? AND enrollment_semester_id = ?", studentID, semesterID).
		Order("enrollment_created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
