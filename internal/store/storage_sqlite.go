// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/tim-encrypted-storage/internal/logger"
	"github.com/MKhiriev/tim-encrypted-storage/models"
)

const secureItemsTable = "secure_items"

// upsertSecureItem makes a write a single statement: either the new value is
// stored or the old one remains.
const upsertSecureItem = `ON CONFLICT (storage_key) DO UPDATE SET
			data       = excluded.data,
			biometric  = excluded.biometric,
			updated_at = CURRENT_TIMESTAMP`

type sqliteSecureStorage struct {
	*DB
	logger *logger.Logger
}

// NewSQLiteSecureStorage returns a [SecureStorage] backed by the
// secure_items table of db.
func NewSQLiteSecureStorage(db *DB, log *logger.Logger) SecureStorage {
	return &sqliteSecureStorage{
		DB:     db,
		logger: log,
	}
}

func (s *sqliteSecureStorage) Store(ctx context.Context, data []byte, key string) error {
	return s.put(ctx, data, key, false)
}

func (s *sqliteSecureStorage) StoreBiometricProtected(ctx context.Context, data []byte, key string) error {
	return s.put(ctx, data, key, true)
}

func (s *sqliteSecureStorage) Get(ctx context.Context, key string) ([]byte, error) {
	return s.get(ctx, key, false)
}

func (s *sqliteSecureStorage) GetBiometricProtected(ctx context.Context, key string) ([]byte, error) {
	return s.get(ctx, key, true)
}

func (s *sqliteSecureStorage) Remove(ctx context.Context, key string) error {
	query, args, err := Builder().Delete(secureItemsTable).Where(sq.Eq{"storage_key": key}).ToSql()
	if err != nil {
		return models.NewSecureStorageError(models.FailedToStoreData, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err))
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).
			Str("func", "sqliteSecureStorage.Remove").
			Str("storage_key", key).
			Msg("failed to delete secure item")
		return models.NewSecureStorageError(models.FailedToStoreData, fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}

	return nil
}

func (s *sqliteSecureStorage) HasValue(ctx context.Context, key string) bool {
	return s.exists(ctx, sq.Eq{"storage_key": key})
}

func (s *sqliteSecureStorage) HasBiometricProtectedValue(ctx context.Context, key string) bool {
	return s.exists(ctx, sq.Eq{"storage_key": key, "biometric": true})
}

func (s *sqliteSecureStorage) put(ctx context.Context, data []byte, key string, biometric bool) error {
	if data == nil {
		data = []byte{}
	}

	query, args, err := Builder().
		Insert(secureItemsTable).
		Columns("storage_key", "data", "biometric").
		Values(key, data, biometric).
		Suffix(upsertSecureItem).
		ToSql()
	if err != nil {
		return models.NewSecureStorageError(models.FailedToStoreData, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err))
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).
			Str("func", "sqliteSecureStorage.put").
			Str("storage_key", key).
			Bool("biometric", biometric).
			Msg("failed to execute upsert for secure item")
		return models.NewSecureStorageError(models.FailedToStoreData, fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}

	return nil
}

func (s *sqliteSecureStorage) get(ctx context.Context, key string, biometric bool) ([]byte, error) {
	query, args, err := Builder().
		Select("data", "biometric").
		From(secureItemsTable).
		Where(sq.Eq{"storage_key": key}).
		ToSql()
	if err != nil {
		return nil, models.NewSecureStorageError(models.FailedToLoadData, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err))
	}

	var (
		data   []byte
		stored bool
	)
	err = s.DB.QueryRowContext(ctx, query, args...).Scan(&data, &stored)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewSecureStorageError(models.FailedToLoadData, ErrItemNotFound)
	}
	if err != nil {
		s.logger.Err(err).
			Str("func", "sqliteSecureStorage.get").
			Str("storage_key", key).
			Msg("failed to query secure item")
		return nil, models.NewSecureStorageError(models.FailedToLoadData, fmt.Errorf("%w: %w", ErrExecutingQuery, err))
	}

	if err = checkProtection(stored, biometric); err != nil {
		return nil, err
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

func (s *sqliteSecureStorage) exists(ctx context.Context, where sq.Eq) bool {
	query, args, err := Builder().Select("1").From(secureItemsTable).Where(where).Limit(1).ToSql()
	if err != nil {
		return false
	}

	var one int
	err = s.DB.QueryRowContext(ctx, query, args...).Scan(&one)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		s.logger.Err(err).
			Str("func", "sqliteSecureStorage.exists").
			Msg("failed to check secure item")
	}
	return err == nil
}
