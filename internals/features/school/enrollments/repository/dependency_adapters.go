// file: internals/features/school/enrollments/repository/dependency_adapters.go
package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/apperr"
	"schoolku_backend/internals/features/school/enrollments/model"
	"schoolku_backend/internals/features/school/enrollments/service"
)

/* ============================================
   ContainerReader over sections/subjects
============================================ */

type GormContainerReader struct {
	db *gorm.DB
}

func NewGormContainerReader(db *gorm.DB) *GormContainerReader {
	return &GormContainerReader{db: db}
}

func (r *GormContainerReader) Get(ctx context.Context, kind string, id uuid.UUID) (*service.ContainerInfo, error) {
	switch kind {
	case model.ContainerSection:
		var row struct {
			SectionName       string `gorm:"column:section_name"`
			SectionGradeLevel int    `gorm:"column:section_grade_level"`
		}
		err := r.db.WithContext(ctx).
			Table("sections").
			Select("section_name, section_grade_level").
			Where("section_id = ?", id).
			Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("Section")
		}
		if err != nil {
			return nil, err
		}
		return &service.ContainerInfo{
			ID:     id,
			Kind:   kind,
			Name:   row.SectionName,
			Detail: strconv.Itoa(row.SectionGradeLevel),
		}, nil

	case model.ContainerSubject:
		var row struct {
			SubjectName string `gorm:"column:subject_name"`
			SubjectType string `gorm:"column:subject_type"`
		}
		err := r.db.WithContext(ctx).
			Table("subjects").
			Select("subject_name, subject_type").
			Where("subject_id = ?", id).
			Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("Subject")
		}
		if err != nil {
			return nil, err
		}
		return &service.ContainerInfo{
			ID:     id,
			Kind:   kind,
			Name:   row.SubjectName,
			Detail: row.SubjectType,
		}, nil
	}
	return nil, apperr.NewValidation("container_type must be section or subject")
}

/* ============================================
   GradeChecker over grades
============================================ */

type GormGradeChecker struct {
	db *gorm.DB
}

func NewGormGradeChecker(db *gorm.DB) *GormGradeChecker {
	return &GormGradeChecker{db: db}
}

func (r *GormGradeChecker) HasGrades(ctx context.Context, enrollmentID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("grades").
		Where("grade_enrollment_id = ?", enrollmentID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
