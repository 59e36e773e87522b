package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgCode(err) == pgForeignKeyViolation
}

// translate maps constraint violations to domain errors. Anything else
// is returned untouched.
func translate(err error, onUnique, onForeignKey error) error {
	switch {
	case err == nil:
		return nil
	case onUnique != nil && isUniqueViolation(err):
		return onUnique
	case onForeignKey != nil && isForeignKeyViolation(err):
		return onForeignKey
	}
	return err
}
