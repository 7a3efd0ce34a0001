package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes.
const (
	sqlStateUniqueViolation = "23505"
	sqlStateCheckViolation  = "23514"
)

// Driver messages for constraint failures when no SQLSTATE is available
// (postgres, mysql, sqlite in that order).
var (
	duplicateKeyMessages = []string{
		"duplicate key value violates unique constraint",
		"Error 1062",
		"UNIQUE constraint failed",
	}
	checkViolationMessages = []string{
		"violates check constraint",
		"Error 3819",
		"CHECK constraint failed",
	}
)

// IsDuplicateKeyErr reports whether err comes from a unique index.
func IsDuplicateKeyErr(err error) bool {
	return matches(err, gorm.ErrDuplicatedKey, sqlStateUniqueViolation, duplicateKeyMessages)
}

// IsCheckViolationErr reports whether err comes from a CHECK constraint.
func IsCheckViolationErr(err error) bool {
	return matches(err, gorm.ErrCheckConstraintViolated, sqlStateCheckViolation, checkViolationMessages)
}

// SQLState extracts the SQLSTATE from a pgx or lib/pq error. gorm runs on pgx;
// migrations run on lib/pq.
func SQLState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func matches(err, sentinel error, sqlState string, messages []string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, sentinel) || SQLState(err) == sqlState {
		return true
	}
	msg := err.Error()
	for _, m := range messages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
