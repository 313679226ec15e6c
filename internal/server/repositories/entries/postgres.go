package entries

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/kbadmin/internal/dbx"
)

// pgUniqueViolation is SQLSTATE unique_violation.
const pgUniqueViolation = "23505"

// NewPostgresRepository binds a repository to a pgx-backed DBTX.
func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, rebind: dollarPlaceholders, isDuplicate: isPgUniqueViolation}
}

func isPgUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
