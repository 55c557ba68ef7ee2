package store

import "errors"

// Sentinel causes wrapped inside *models.SecureStorageError. Callers should
// use [errors.Is] to match against these values.
var (
	// ErrItemNotFound is returned when no value exists under the requested key.
	ErrItemNotFound = errors.New("secure item was not found")

	// ErrBiometricProtected is returned when a plain read targets a
	// biometric-protected value.
	ErrBiometricProtected = errors.New("secure item is biometric protected")

	// ErrNotBiometricProtected is returned when a biometric read targets a
	// plain value.
	ErrNotBiometricProtected = errors.New("secure item is not biometric protected")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")
)
