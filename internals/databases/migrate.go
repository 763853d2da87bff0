package database

import (
	"log"

	"gorm.io/gorm"
)

// Migrate applies the schema. The compound unique indexes here are not an
// optimization: they are the storage-level enforcement of the consistency
// rules (one active semester, no duplicate enrollment, one submission per
// teacher/subject/semester/quarter). Application-level checks exist for
// friendly messages; these indexes win every race.
func Migrate(db *gorm.DB) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		`CREATE TABLE IF NOT EXISTS semesters (
			semester_id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			semester_sy_start_year integer NOT NULL,
			semester_sy_end_year   integer NOT NULL,
			semester_term          smallint NOT NULL CHECK (semester_term IN (1, 2)),
			semester_status        text NOT NULL CHECK (semester_status IN ('upcoming', 'active', 'ended')),
			semester_created_by    uuid,
			semester_updated_by    uuid,
			semester_created_at    timestamptz NOT NULL DEFAULT now(),
			semester_updated_at    timestamptz NOT NULL DEFAULT now(),
			CHECK (semester_sy_end_year >= semester_sy_start_year)
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_semesters_school_year_term
			ON semesters (semester_sy_start_year, semester_sy_end_year, semester_term)`,
		// one active semester, globally
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_semesters_one_active
			ON semesters (semester_status) WHERE semester_status = 'active'`,

		`CREATE TABLE IF NOT EXISTS sections (
			section_id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			section_name        text NOT NULL,
			section_grade_level integer NOT NULL,
			section_created_by  uuid,
			section_updated_by  uuid,
			section_created_at  timestamptz NOT NULL DEFAULT now(),
			section_updated_at  timestamptz NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS subjects (
			subject_id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			subject_name       text NOT NULL,
			subject_type       text NOT NULL,
			subject_created_by uuid,
			subject_updated_by uuid,
			subject_created_at timestamptz NOT NULL DEFAULT now(),
			subject_updated_at timestamptz NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS students (
			student_id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			student_first_name  text NOT NULL,
			student_last_name   text NOT NULL,
			student_lrn         text,
			student_created_by  uuid,
			student_updated_by  uuid,
			student_created_at  timestamptz NOT NULL DEFAULT now(),
			student_updated_at  timestamptz NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS teaching_assignments (
			teaching_assignment_id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			teaching_assignment_entity_type text NOT NULL CHECK (teaching_assignment_entity_type IN ('section', 'subject')),
			teaching_assignment_entity_id   uuid NOT NULL,
			teaching_assignment_person_id   uuid NOT NULL,
			teaching_assignment_start_at    timestamptz NOT NULL,
			teaching_assignment_end_at      timestamptz,
			teaching_assignment_created_by  uuid,
			teaching_assignment_updated_by  uuid,
			teaching_assignment_created_at  timestamptz NOT NULL DEFAULT now(),
			teaching_assignment_updated_at  timestamptz NOT NULL DEFAULT now(),
			CHECK (teaching_assignment_end_at IS NULL OR teaching_assignment_end_at > teaching_assignment_start_at)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_teaching_assignments_pair
			ON teaching_assignments (teaching_assignment_entity_id, teaching_assignment_person_id)`,

		`CREATE TABLE IF NOT EXISTS enrollments (
			enrollment_id                      uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			enrollment_container_type          text NOT NULL CHECK (enrollment_container_type IN ('section', 'subject')),
			enrollment_container_id            uuid NOT NULL,
			enrollment_semester_id             uuid NOT NULL REFERENCES semesters (semester_id),
			enrollment_student_id              uuid NOT NULL,
			enrollment_container_name_snapshot   text NOT NULL,
			enrollment_container_detail_snapshot text NOT NULL,
			enrollment_sy_start_snapshot       integer NOT NULL,
			enrollment_sy_end_snapshot         integer NOT NULL,
			enrollment_term_snapshot           smallint NOT NULL,
			enrollment_created_by              uuid,
			enrollment_created_at              timestamptz NOT NULL DEFAULT now()
		)`,
		// a student can be enrolled once per container per semester
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_enrollments_container_semester_student
			ON enrollments (enrollment_container_id, enrollment_semester_id, enrollment_student_id)`,
		// at most one section per student per semester
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_enrollments_one_section_per_semester
			ON enrollments (enrollment_student_id, enrollment_semester_id)
			WHERE enrollment_container_type = 'section'`,
		`CREATE INDEX IF NOT EXISTS idx_enrollments_student_semester
			ON enrollments (enrollment_student_id, enrollment_semester_id)`,

		`CREATE TABLE IF NOT EXISTS grade_submissions (
			grade_submission_id                     uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			grade_submission_reviewer_id            uuid NOT NULL,
			grade_submission_semester_id            uuid NOT NULL REFERENCES semesters (semester_id),
			grade_submission_subject_id             uuid NOT NULL REFERENCES subjects (subject_id),
			grade_submission_teacher_id             uuid NOT NULL,
			grade_submission_quarter                smallint NOT NULL CHECK (grade_submission_quarter IN (1, 2)),
			grade_submission_status                 text NOT NULL CHECK (grade_submission_status IN ('pending', 'under_review', 'approved', 'rejected')),
			grade_submission_submitted_at           timestamptz NOT NULL,
			grade_submission_marked_under_review_at timestamptz,
			grade_submission_marked_approved_at     timestamptz,
			grade_submission_marked_rejected_at     timestamptz,
			grade_submission_remark                 text,
			grade_submission_created_by             uuid,
			grade_submission_updated_by             uuid,
			grade_submission_created_at             timestamptz NOT NULL DEFAULT now(),
			grade_submission_updated_at             timestamptz NOT NULL DEFAULT now()
		)`,
		// one live submission per teacher/subject/semester/quarter; a rejected
		// submission does not block resubmission
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_grade_submissions_slot
			ON grade_submissions (grade_submission_teacher_id, grade_submission_subject_id,
				grade_submission_semester_id, grade_submission_quarter)
			WHERE grade_submission_status <> 'rejected'`,
		`CREATE INDEX IF NOT EXISTS idx_grade_submissions_reviewer
			ON grade_submissions (grade_submission_reviewer_id, grade_submission_submitted_at DESC)`,

		`CREATE TABLE IF NOT EXISTS grades (
			grade_id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			grade_submission_id uuid NOT NULL REFERENCES grade_submissions (grade_submission_id),
			grade_enrollment_id uuid NOT NULL REFERENCES enrollments (enrollment_id),
			grade_quarter_1     integer,
			grade_quarter_2     integer,
			grade_created_by    uuid,
			grade_created_at    timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_grades_submission_enrollment
			ON grades (grade_submission_id, grade_enrollment_id)`,
		`CREATE INDEX IF NOT EXISTS idx_grades_enrollment ON grades (grade_enrollment_id)`,

		`CREATE TABLE IF NOT EXISTS domain_events (
			domain_event_id           uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			domain_event_type         text NOT NULL,
			domain_event_payload      jsonb,
			domain_event_occurred_at  timestamptz NOT NULL DEFAULT now(),
			domain_event_published_at timestamptz
		)`,
	}

	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			log.Printf("[ERROR] migrate: %v", err)
			return err
		}
	}
	return nil
}
