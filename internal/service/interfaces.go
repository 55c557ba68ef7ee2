// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the encrypted storage: it fetches per-entry keys
// from the key service, seals payloads with the cipher engine, and keeps
// ciphertexts and biometric envelopes in the secure storage.
//
// Every failure returned by [EncryptedStorage] is a single
// *models.EncryptedStorageError. Network-bound operations honour ctx only for
// the key service round trip; once a key has been obtained the local
// encrypt-and-store step runs to completion.
//
// Concurrent writes to the same storage key or key id are not serialised.
// Callers that need ordering must provide it.
package service

import (
	"context"

	"github.com/MKhiriev/tim-encrypted-storage/internal/keystore"
	"github.com/MKhiriev/tim-encrypted-storage/models"
)

// EncryptedStorage stores and loads payloads encrypted with keys issued by
// the key service, unlocked either by a secret, by a long secret, or by a
// biometric-authenticated keystore cipher.
type EncryptedStorage interface {
	// HasValue reports whether a ciphertext is stored under storageKey.
	HasValue(ctx context.Context, storageKey models.StorageKey) bool

	// HasBiometricProtectedValue reports whether storageKey can be loaded
	// via biometrics: both the biometric long-secret slot for keyID and the
	// ciphertext under storageKey must exist.
	HasBiometricProtectedValue(ctx context.Context, storageKey models.StorageKey, keyID string) bool

	// Remove deletes the ciphertext under storageKey. Biometric protection
	// for its key id is untouched.
	Remove(ctx context.Context, storageKey models.StorageKey) error

	// RemoveLongSecret deletes the biometric long-secret slot for keyID and
	// the keystore secret key recorded in it, revoking biometric access for
	// keyID.
	RemoveLongSecret(ctx context.Context, keyID string) error

	// Store fetches the key for keyID with secret, then encrypts and stores
	// data under storageKey. Storage keys under "<namespace>.longSecret." are
	// reserved and rejected.
	Store(ctx context.Context, secret string, storageKey models.StorageKey, data []byte, keyID string) error

	// StoreWithLongSecret is Store unlocking the key with the long secret.
	StoreWithLongSecret(ctx context.Context, longSecret string, storageKey models.StorageKey, data []byte, keyID string) error

	// StoreWithNewKey creates a new key bound to secret, encrypts and stores
	// data with it, and returns the new key id and long secret. A non-empty
	// result together with an error means the key was created and a local
	// step failed.
	StoreWithNewKey(ctx context.Context, secret string, storageKey models.StorageKey, data []byte) (models.KeyCreationResult, error)

	// Get fetches the key for keyID with secret and decrypts the ciphertext
	// under storageKey.
	Get(ctx context.Context, secret string, storageKey models.StorageKey, keyID string) ([]byte, error)

	// GetWithLongSecret is Get unlocking the key with the long secret.
	GetWithLongSecret(ctx context.Context, longSecret string, storageKey models.StorageKey, keyID string) ([]byte, error)

	// EnableBiometric fetches the long secret for keyID with secret and
	// stores it wrapped by cipher in the biometric slot for keyID. cipher
	// must come from GetEncryptCipher and be authenticated.
	EnableBiometric(ctx context.Context, keyID, secret string, cipher keystore.Cipher) error

	// EnableBiometricWithLongSecret wraps an already known long secret.
	// It makes no network calls.
	EnableBiometricWithLongSecret(ctx context.Context, keyID, longSecret string, cipher keystore.Cipher) error

	// StoreViaBiometric unwraps the long secret for keyID with an
	// authenticated decrypt cipher and stores data under storageKey with it.
	StoreViaBiometric(ctx context.Context, storageKey models.StorageKey, data []byte, keyID string, cipher keystore.Cipher) error

	// StoreViaBiometricWithNewKey creates a key bound to secret, enables
	// biometric protection for it with cipher, then encrypts and stores
	// data. A key created before a later step fails is not rolled back: the
	// result is returned with the error and the key stays usable through
	// secret.
	StoreViaBiometricWithNewKey(ctx context.Context, storageKey models.StorageKey, data []byte, secret string, cipher keystore.Cipher) (models.KeyCreationResult, error)

	// GetViaBiometric unwraps the long secret for keyID with an
	// authenticated decrypt cipher, fetches the key with it and decrypts the
	// ciphertext under storageKey.
	GetViaBiometric(ctx context.Context, storageKey models.StorageKey, keyID string, cipher keystore.Cipher) (models.BiometricLoadResult, error)

	// GetEncryptCipher returns an encrypt-mode cipher bound to a fresh
	// keystore secret key for keyID. It must be authenticated before use.
	GetEncryptCipher(ctx context.Context, keyID string) (keystore.Cipher, error)

	// GetDecryptCipher returns a decrypt-mode cipher bound to the keystore
	// secret key that wrapped the biometric slot for keyID, initialised with
	// the IV stored there. It must be authenticated before use.
	GetDecryptCipher(ctx context.Context, keyID string) (keystore.Cipher, error)

	// GetDecryptCipherFor is GetDecryptCipher with the wrapping secret key
	// named by the caller instead of read from the slot.
	GetDecryptCipherFor(ctx context.Context, keyID, secretKeyID string) (keystore.Cipher, error)
}
