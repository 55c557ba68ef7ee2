// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package keystore

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/awnumar/memguard"

	"github.com/MKhiriev/tim-encrypted-storage/internal/logger"
	"github.com/MKhiriev/tim-encrypted-storage/internal/store"
)

const (
	entriesTable = "keystore_entries"
	stateTable   = "keystore_state"

	currentGeneration = "(SELECT enrollment_generation FROM keystore_state WHERE id = 1)"

	upsertEntry = `ON CONFLICT (alias) DO UPDATE SET
			algorithm                 = excluded.algorithm,
			key_size                  = excluded.key_size,
			material                  = excluded.material,
			user_auth_required        = excluded.user_auth_required,
			invalidated_by_enrollment = excluded.invalidated_by_enrollment,
			enrollment_generation     = excluded.enrollment_generation,
			created_at                = CURRENT_TIMESTAMP`
)

type sqliteKeystore struct {
	cipherFactory
	db     *store.DB
	logger *logger.Logger
}

// NewSQLiteKeystore returns a [Keystore] persisted in the keystore_entries and
// keystore_state tables of db. Key material is stored unencrypted in the
// file and loaded into a memguard enclave on every GetKey.
func NewSQLiteKeystore(db *store.DB, authWindow time.Duration, log *logger.Logger) Keystore {
	return &sqliteKeystore{
		cipherFactory: newCipherFactory(authWindow),
		db:            db,
		logger:        log,
	}
}

func (s *sqliteKeystore) GetKey(ctx context.Context, alias string) (*SecretKey, error) {
	query, args, err := store.Builder().
		Select(
			"e.algorithm",
			"e.key_size",
			"e.material",
			"e.user_auth_required",
			"e.invalidated_by_enrollment",
			"e.enrollment_generation < s.enrollment_generation",
		).
		From(entriesTable + " e").
		Join(stateTable + " s ON s.id = 1").
		Where(sq.Eq{"e.alias": alias}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}

	var (
		spec     KeySpec
		material []byte
		stale    bool
	)
	err = s.db.QueryRowContext(ctx, query, args...).Scan(
		&spec.Algorithm,
		&spec.Size,
		&material,
		&spec.UserAuthenticationRequired,
		&spec.InvalidatedByBiometricEnrollment,
		&stale,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		s.logger.Err(err).Str("func", "sqliteKeystore.GetKey").Str("alias", alias).Msg("failed to query keystore entry")
		return nil, fmt.Errorf("%w: %w", store.ErrExecutingQuery, err)
	}

	return &SecretKey{
		alias:       alias,
		spec:        spec,
		material:    memguard.NewEnclave(material),
		invalidated: spec.InvalidatedByBiometricEnrollment && stale,
	}, nil
}

func (s *sqliteKeystore) GenerateKey(ctx context.Context, alias string, spec KeySpec) (*SecretKey, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	material := make([]byte, spec.Size/8)
	if _, err := io.ReadFull(rand.Reader, material); err != nil {
		return nil, fmt.Errorf("generate key material: %w", err)
	}
	defer memguard.WipeBytes(material)

	query, args, err := store.Builder().
		Insert(entriesTable).
		Columns(
			"alias",
			"algorithm",
			"key_size",
			"material",
			"user_auth_required",
			"invalidated_by_enrollment",
			"enrollment_generation",
		).
		Values(
			alias,
			spec.Algorithm,
			spec.Size,
			material,
			spec.UserAuthenticationRequired,
			spec.InvalidatedByBiometricEnrollment,
			sq.Expr(currentGeneration),
		).
		Suffix(upsertEntry).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "sqliteKeystore.GenerateKey").Str("alias", alias).Msg("failed to store keystore entry")
		return nil, fmt.Errorf("%w: %w", store.ErrExecutingStatement, err)
	}

	return &SecretKey{
		alias:    alias,
		spec:     spec,
		material: memguard.NewEnclave(material),
	}, nil
}

func (s *sqliteKeystore) DeleteKey(ctx context.Context, alias string) error {
	query, args, err := store.Builder().Delete(entriesTable).Where(sq.Eq{"alias": alias}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "sqliteKeystore.DeleteKey").Str("alias", alias).Msg("failed to delete keystore entry")
		return fmt.Errorf("%w: %w", store.ErrExecutingStatement, err)
	}
	return nil
}

func (s *sqliteKeystore) ContainsAlias(ctx context.Context, alias string) (bool, error) {
	query, args, err := store.Builder().Select("1").From(entriesTable).Where(sq.Eq{"alias": alias}).Limit(1).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}

	var one int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", store.ErrExecutingQuery, err)
	}
	return true, nil
}

func (s *sqliteKeystore) EnrollmentChanged(ctx context.Context) error {
	query, args, err := store.Builder().
		Update(stateTable).
		Set("enrollment_generation", sq.Expr("enrollment_generation + 1")).
		Where(sq.Eq{"id": 1}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "sqliteKeystore.EnrollmentChanged").Msg("failed to bump enrollment generation")
		return fmt.Errorf("%w: %w", store.ErrExecutingStatement, err)
	}
	s.logger.Info().Msg("biometric enrollment changed, enrollment-bound keys invalidated")
	return nil
}
