package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsUniqueViolation reports whether the provided error came from a unique
// constraint. TranslateError is enabled on the client, so GORM surfaces
// gorm.ErrDuplicatedKey for both Postgres and SQLite; the message checks
// cover raw driver errors that bypass translation.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
