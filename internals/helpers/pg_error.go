package helper

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Postgres SQLSTATE codes we answer with something better than 500.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

func pgCode(err error) string {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// MapPGError maps pgx / lib/pq driver errors to an HTTP status and message.
func MapPGError(err error) (int, string) {
	switch pgCode(err) {
	case pgForeignKeyViolation:
		return http.StatusBadRequest, "referenced record does not exist"
	case pgUniqueViolation:
		return http.StatusConflict, "duplicate record"
	default:
		return http.StatusInternalServerError, ""
	}
}

func IsForeignKeyViolation(err error) bool { return pgCode(err) == pgForeignKeyViolation }
