package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"company_backend/internal/domain"
)

// Postgres SQLSTATE class 23: integrity constraint violation.
const pgIntegrityClass = "23"

// TranslateError maps store errors onto domain errors.
// what names the entity for the message, e.g. "company".
func TranslateError(err error, what string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %s: %v", domain.ErrConstraintViolation, what, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, pgIntegrityClass) {
		return fmt.Errorf("%w: %s: %s", domain.ErrConstraintViolation, what, pgErr.Message)
	}
	// sqlite reports constraint failures as plain text when the translator does not recognise them.
	if strings.Contains(err.Error(), "constraint failed") {
		return fmt.Errorf("%w: %s: %v", domain.ErrConstraintViolation, what, err)
	}
	return err
}
