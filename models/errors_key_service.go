package models

import "fmt"

// KeyServiceErrorKind discriminates the failures reported by the key service
// client.
type KeyServiceErrorKind int

const (
	// BadPassword means the service rejected the secret or long secret (HTTP 401).
	BadPassword KeyServiceErrorKind = iota + 1
	// KeyLocked means the key is locked on the service (HTTP 204 or 403).
	KeyLocked
	// KeyMissing means the service does not know the keyid (HTTP 404).
	KeyMissing
	// UnableToCreateKey means the service failed internally (HTTP 500).
	UnableToCreateKey
	// BadInternet is a transport failure other than a missing connection,
	// for example a timeout or a TLS error.
	BadInternet
	// PotentiallyNoInternet is a connection-level failure: the host could not
	// be resolved or reached.
	PotentiallyNoInternet
	// UnableToDecode means a successful response carried an unusable body.
	UnableToDecode
	// UnknownKeyServiceFailure covers every other failure.
	UnknownKeyServiceFailure
)

func (k KeyServiceErrorKind) String() string {
	switch k {
	case BadPassword:
		return "BadPassword"
	case KeyLocked:
		return "KeyLocked"
	case KeyMissing:
		return "KeyMissing"
	case UnableToCreateKey:
		return "UnableToCreateKey"
	case BadInternet:
		return "BadInternet"
	case PotentiallyNoInternet:
		return "PotentiallyNoInternet"
	case UnableToDecode:
		return "UnableToDecode"
	case UnknownKeyServiceFailure:
		return "Unknown"
	default:
		return fmt.Sprintf("KeyServiceErrorKind(%d)", int(k))
	}
}

// KeyServiceError is a failure of a key service call. Err holds the
// underlying cause when one exists (always for UnableToDecode and
// UnknownKeyServiceFailure).
type KeyServiceError struct {
	Kind KeyServiceErrorKind
	Err  error
}

// Sentinels for matching with errors.Is. They match any KeyServiceError of
// the same kind regardless of its cause.
var (
	ErrBadPassword           = &KeyServiceError{Kind: BadPassword}
	ErrKeyLocked             = &KeyServiceError{Kind: KeyLocked}
	ErrKeyMissing            = &KeyServiceError{Kind: KeyMissing}
	ErrUnableToCreateKey     = &KeyServiceError{Kind: UnableToCreateKey}
	ErrBadInternet           = &KeyServiceError{Kind: BadInternet}
	ErrPotentiallyNoInternet = &KeyServiceError{Kind: PotentiallyNoInternet}
	ErrUnableToDecode        = &KeyServiceError{Kind: UnableToDecode}
	ErrKeyServiceUnknown     = &KeyServiceError{Kind: UnknownKeyServiceFailure}
)

// NewKeyServiceError builds a KeyServiceError of the given kind.
func NewKeyServiceError(kind KeyServiceErrorKind, cause error) *KeyServiceError {
	return &KeyServiceError{Kind: kind, Err: cause}
}

func (e *KeyServiceError) Error() string {
	var msg string
	switch e.Kind {
	case BadPassword:
		msg = "key service rejected the secret"
	case KeyLocked:
		msg = "key is locked"
	case KeyMissing:
		msg = "key is missing on the key service"
	case UnableToCreateKey:
		msg = "key service was unable to create the key"
	case BadInternet:
		msg = "bad internet connection"
	case PotentiallyNoInternet:
		msg = "potentially no internet connection"
	case UnableToDecode:
		msg = "unable to decode key service response"
	case UnknownKeyServiceFailure:
		msg = "unknown key service failure"
	default:
		msg = e.Kind.String()
	}

	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *KeyServiceError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a KeyServiceError of the same kind.
func (e *KeyServiceError) Is(target error) bool {
	t, ok := target.(*KeyServiceError)
	return ok && t.Kind == e.Kind
}
