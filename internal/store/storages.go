package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/tim-encrypted-storage/internal/logger"
)

// Storages bundles the SQLite connection and the secure storage built on it.
type Storages struct {
	DB            *DB
	SecureStorage SecureStorage
}

// NewStorages connects to the SQLite file at dsn and builds the secure
// storage on top of it.
func NewStorages(ctx context.Context, dsn string, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectSQLite(ctx, dsn, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting secure storage: %w", err)
	}

	return &Storages{
		DB:            db,
		SecureStorage: NewSQLiteSecureStorage(db, log),
	}, nil
}

func (s *Storages) Close() error {
	return s.DB.Close()
}
