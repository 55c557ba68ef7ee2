package models

import "fmt"

// SecureStorageErrorKind discriminates the failures of the secure storage.
type SecureStorageErrorKind int

const (
	// FailedToLoadData means the value could not be read, including when no
	// value exists for the key.
	FailedToLoadData SecureStorageErrorKind = iota + 1
	// FailedToStoreData means the value could not be written.
	FailedToStoreData
	// AuthenticationFailedForData means a biometric-protected read was refused.
	AuthenticationFailedForData
)

func (k SecureStorageErrorKind) String() string {
	switch k {
	case FailedToLoadData:
		return "FailedToLoadData"
	case FailedToStoreData:
		return "FailedToStoreData"
	case AuthenticationFailedForData:
		return "AuthenticationFailedForData"
	default:
		return fmt.Sprintf("SecureStorageErrorKind(%d)", int(k))
	}
}

// SecureStorageError is a failure reported by a secure storage backend.
type SecureStorageError struct {
	Kind SecureStorageErrorKind
	Err  error
}

var (
	ErrFailedToLoadData            = &SecureStorageError{Kind: FailedToLoadData}
	ErrFailedToStoreData           = &SecureStorageError{Kind: FailedToStoreData}
	ErrAuthenticationFailedForData = &SecureStorageError{Kind: AuthenticationFailedForData}
)

// NewSecureStorageError builds a SecureStorageError of the given kind.
func NewSecureStorageError(kind SecureStorageErrorKind, cause error) *SecureStorageError {
	return &SecureStorageError{Kind: kind, Err: cause}
}

func (e *SecureStorageError) Error() string {
	var msg string
	switch e.Kind {
	case FailedToLoadData:
		msg = "failed to load data"
	case FailedToStoreData:
		msg = "failed to store data"
	case AuthenticationFailedForData:
		msg = "authentication failed for data"
	default:
		msg = e.Kind.String()
	}

	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *SecureStorageError) Unwrap() error {
	return e.Err
}

func (e *SecureStorageError) Is(target error) bool {
	t, ok := target.(*SecureStorageError)
	return ok && t.Kind == e.Kind
}
