package store

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/secure_storage_mock.go -package=mock

// SecureStorage is the local key-value store for ciphertexts and biometric
// envelopes. Every failure is a *models.SecureStorageError.
//
// Values written with StoreBiometricProtected can only be read back with
// GetBiometricProtected; Get on such a value fails with
// AuthenticationFailedForData, and so does GetBiometricProtected on a plain
// value.
type SecureStorage interface {
	Store(ctx context.Context, data []byte, key string) error
	Get(ctx context.Context, key string) ([]byte, error)
	// Remove deletes the value under key, plain or biometric-protected.
	// Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	// HasValue reports whether any value exists under key.
	HasValue(ctx context.Context, key string) bool

	StoreBiometricProtected(ctx context.Context, data []byte, key string) error
	GetBiometricProtected(ctx context.Context, key string) ([]byte, error)
	HasBiometricProtectedValue(ctx context.Context, key string) bool
}
