package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// pgSQLErr matches pgconn.PgError without importing pgx directly.
type pgSQLErr interface {
	SQLState() string
	Error() string
}

// IsUniqueViolation reports whether err is a Postgres unique-index violation
// (SQLSTATE 23505). The compound unique indexes carry the consistency rules,
// so repositories translate this into the same conflict the application-level
// check raises.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) && pgErr.SQLState() == "23505" {
		return true
	}
	// fallback for drivers that only expose the message
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "23505")
}
