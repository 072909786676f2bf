package mysql

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateError reports whether err is a MySQL unique-index violation
// (error 1062, "Duplicate entry").
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Fallback for drivers that do not translate the error.
	return strings.Contains(err.Error(), "Duplicate entry")
}
