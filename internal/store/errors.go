package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrInvalidReference = errors.New("invalid reference")
	ErrConstraint       = errors.New("constraint violation")
	ErrUnknownField     = errors.New("field is not updatable")
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"
)

// mapErr переводит ошибки драйвера в ошибки хранилища; what — что искали ("company c1").
func mapErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%s: %w: %s", what, ErrConflict, pgErr.Detail)
		case codeForeignKeyViolation:
			return fmt.Errorf("%s: %w: %s", what, ErrInvalidReference, pgErr.Detail)
		case codeNotNullViolation, codeCheckViolation:
			return fmt.Errorf("%s: %w: %s", what, ErrConstraint, pgErr.Message)
		}
	}
	return fmt.Errorf("%s: %w", what, err)
}
