package postgres

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/medisys/hospital-api/config"
	apperrors "github.com/medisys/hospital-api/pkg/errors"
)

func NewDB(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// pq error classes for constraint violations. These are matched on the
// structured error code, never on the message text.
const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
	pqCheckViolation      = "23514"
)

// mapConstraintError converts store-enforced integrity violations into the
// application error taxonomy. A foreign-key rejection is the fallback layer
// behind the services' dependency pre-checks, so it surfaces as a dependency
// conflict with a generic message.
func mapConstraintError(err error, resource string) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqForeignKeyViolation:
			return apperrors.Dependency(fmt.Sprintf("%s is still referenced by other records", resource))
		case pqUniqueViolation:
			return apperrors.Conflict("", fmt.Sprintf("%s already exists", resource))
		case pqCheckViolation:
			return apperrors.Validation(fmt.Sprintf("%s violates a data constraint", resource))
		}
	}
	return err
}
