package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type sqlStateErr struct{ code string }

func (e sqlStateErr) SQLState() string { return e.code }
func (e sqlStateErr) Error() string    { return "constraint violation" }

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))

	assert.True(t, IsUniqueViolation(sqlStateErr{code: "23505"}))
	assert.False(t, IsUniqueViolation(sqlStateErr{code: "23503"}))

	wrapped := fmt.Errorf("create enrollment: %w", sqlStateErr{code: "23505"})
	assert.True(t, IsUniqueViolation(wrapped))

	assert.True(t, IsUniqueViolation(errors.New("ERROR: duplicate key value violates unique constraint")))
	assert.False(t, IsUniqueViolation(errors.New("connection reset by peer")))
}
