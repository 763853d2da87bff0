// file: internals/features/school/enrollments/repository/enrollment_repository_test.go
package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"schoolku_backend/internals/apperr"
)

type uniqueErr struct{}

func (uniqueErr) SQLState() string { return "23505" }
func (uniqueErr) Error() string {
	return `duplicate key value violates unique constraint "uq_enrollments_container_semester_student"`
}

func TestTranslateUniqueViolation(t *testing.T) {
	r := NewEnrollmentRepository(nil)

	assert.NoError(t, r.translate(nil))

	err := r.translate(uniqueErr{})
	assert.True(t, apperr.IsConflict(err))

	plain := errors.New("connection reset by peer")
	assert.Equal(t, plain, r.translate(plain))
}
