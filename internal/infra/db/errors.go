package db

import (
	"errors"

	repo "snippetapi/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Classify maps driver errors onto repository sentinels.
// Unknown errors are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repo.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repo.ErrConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return repo.ErrProtected
	}

	// TranslateErrorを通らない経路（Raw/Execなど）
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return repo.ErrConflict
		case pgForeignKeyViolation:
			return repo.ErrProtected
		}
	}
	return err
}
