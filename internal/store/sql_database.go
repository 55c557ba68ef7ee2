package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/tim-encrypted-storage/internal/logger"
	"github.com/MKhiriev/tim-encrypted-storage/migrations"
)

// DB is a SQLite connection shared by the secure storage and the software
// keystore.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// NewDBFromSQL wraps an existing *sql.DB (tests, or a connection opened by the
// caller).
func NewDBFromSQL(db *sql.DB, log *logger.Logger) *DB {
	return &DB{
		DB:     db,
		logger: log,
	}
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// Builder returns a squirrel statement builder with SQLite placeholders.
func Builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}
