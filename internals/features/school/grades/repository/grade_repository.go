// file: internals/features/school/grades/repository/grade_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/apperr"
	database "schoolku_backend/internals/databases"
	"schoolku_backend/internals/events"
	"schoolku_backend/internals/features/school/grades/model"
	"schoolku_backend/internals/features/school/grades/service"
)

const slotTakenMsg = "The grades for this subject have already been submitted."

type GradeRepository struct {
	db      *gorm.DB
	emitter *events.Emitter
}

func NewGradeRepository(db *gorm.DB, emitter *events.Emitter) *GradeRepository {
	if emitter == nil {
		emitter = events.NewEmitter(nil)
	}
	return &GradeRepository{db: db, emitter: emitter}
}

func (r *GradeRepository) CreateSubmission(ctx context.Context, sub *model.GradeSubmissionModel, grades []model.GradeModel, evt events.Event) error {
	var outbox *events.DomainEventModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sub).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return apperr.WrapConflict(slotTakenMsg, err)
			}
			return err
		}
		if err := tx.Create(&grades).Error; err != nil {
			return err
		}
		row, err := r.emitter.Record(tx, evt)
		if err != nil {
			return err
		}
		outbox = row
		return nil
	})
	if err != nil {
		return err
	}
	r.emitter.Dispatch(ctx, r.db, outbox, evt)
	return nil
}

func (r *GradeRepository) GetSubmission(ctx context.Context, id uuid.UUID) (*model.GradeSubmissionModel, error) {
	var m model.GradeSubmissionModel
	err := r.db.WithContext(ctx).
		Where("grade_submission_id = ?", id).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NewNotFound("Submission")
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// TransitionStatus is a conditional update: the WHERE clause re-checks the
// origin status so two concurrent reviewers cannot both win.
func (r *GradeRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from []string, ch service.StatusChange, evt *events.Event) error {
	updates := map[string]any{
		"grade_submission_status":     ch.To,
		"grade_submission_updated_by": ch.ActorID,
	}
	switch ch.To {
	case model.StatusUnderReview:
		updates["grade_submission_marked_under_review_at"] = ch.At
	case model.StatusApproved:
		updates["grade_submission_marked_approved_at"] = ch.At
	case model.StatusRejected:
		updates["grade_submission_marked_rejected_at"] = ch.At
	}
	if ch.Remark != nil {
		updates["grade_submission_remark"] = *ch.Remark
	}

	var outbox *events.DomainEventModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.GradeSubmissionModel{}).
			Where("grade_submission_id = ? AND grade_submission_status IN ?", id, from).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NewState("Submission status changed, please reload and try again")
		}
		if evt != nil {
			row, err := r.emitter.Record(tx, *evt)
			if err != nil {
				return err
			}
			outbox = row
		}
		return nil
	})
	if err != nil {
		return err
	}
	if evt != nil {
		r.emitter.Dispatch(ctx, r.db, outbox, *evt)
	}
	return nil
}

// ReplaceGrades swaps every grade row of the submission, holding the parent
// row so the status cannot flip mid-swap.
func (r *GradeRepository) ReplaceGrades(ctx context.Context, submissionID uuid.UUID, ifStatus string, grades []model.GradeModel) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked model.GradeSubmissionModel
		err := tx.
			Select("grade_submission_id").
			Where("grade_submission_id = ? AND grade_submission_status = ?", submissionID, ifStatus).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Take(&locked).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NewState("Submission status changed, please reload and try again")
		}
		if err != nil {
			return err
		}
		if err := tx.
			Where("grade_submission_id = ?", submissionID).
			Delete(&model.GradeModel{}).Error; err != nil {
			return err
		}
		return tx.Create(&grades).Error
	})
}

func (r *GradeRepository) ListGradesBySubmission(ctx context.Context, submissionID uuid.UUID) ([]model.GradeModel, error) {
	var rows []model.GradeModel
	err := r.db.WithContext(ctx).
		Where("grade_submission_id = ?", submissionID).
		Order("grade_created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GradeRepository) ListByTeacher(ctx context.Context, teacherID uuid.UUID, offset, limit int) ([]model.GradeSubmissionModel, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&model.GradeSubmissionModel{}).
		Where("grade_submission_teacher_id = ?", teacherID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.GradeSubmissionModel
	err := q.
		Order("grade_submission_submitted_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *GradeRepository) ListForReviewer(ctx context.Context, reviewerID uuid.UUID, f service.ReviewFilter, offset, limit int) ([]model.GradeSubmissionModel, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&model.GradeSubmissionModel{}).
		Where("grade_submission_reviewer_id = ?", reviewerID)

	if f.Status != nil {
		q = q.Where("grade_submission_status = ?", *f.Status)
	}
	if f.TeacherID != nil {
		q = q.Where("grade_submission_teacher_id = ?", *f.TeacherID)
	}
	if f.SubmittedFrom != nil {
		q = q.Where("grade_submission_submitted_at >= ?", *f.SubmittedFrom)
	}
	if f.SubmittedTo != nil {
		q = q.Where("grade_submission_submitted_at < ?", *f.SubmittedTo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.GradeSubmissionModel
	err := q.
		Order("grade_submission_submitted_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListApprovedGradesForStudent flattens approved submissions into one row per
// (subject, quarter) for the student's report card.
func (r *GradeRepository) ListApprovedGradesForStudent(ctx context.Context, studentID, semesterID uuid.UUID) ([]service.StudentGradeRow, error) {
	var rows []struct {
		SubjectID   uuid.UUID `gorm:"column:subject_id"`
		SubjectName string    `gorm:"column:subject_name"`
		Quarter     int       `gorm:"column:quarter"`
		Grade       int       `gorm:"column:grade"`
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT s.subject_id,
		       s.subject_name,
		       gs.grade_submission_quarter AS quarter,
		       CASE WHEN gs.grade_submission_quarter = 1 THEN g.grade_quarter_1
		            ELSE g.grade_quarter_2 END AS grade
		FROM grades g
		JOIN grade_submissions gs ON gs.grade_submission_id = g.grade_submission_id
		JOIN enrollments e ON e.enrollment_id = g.grade_enrollment_id
		JOIN subjects s ON s.subject_id = gs.grade_submission_subject_id
		WHERE e.enrollment_student_id = ?
		  AND gs.grade_submission_semester_id = ?
		  AND gs.grade_submission_status = ?
		ORDER BY s.subject_name ASC, gs.grade_submission_quarter ASC
	`, studentID, semesterID, model.StatusApproved).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]service.StudentGradeRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, service.StudentGradeRow{
			SubjectID:   row.SubjectID,
			SubjectName: row.SubjectName,
			Quarter:     row.Quarter,
			Grade:       row.Grade,
		})
	}
	return out, nil
}
