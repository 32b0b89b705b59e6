package connection

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a postgres unique violation.
// When constraint is non-empty the violated constraint must match as well.
func IsUniqueViolation(err error, constraint string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation && (constraint == "" || pgErr.ConstraintName == constraint)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return constraint == ""
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") &&
		(constraint == "" || strings.Contains(msg, strings.ToLower(constraint)))
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
