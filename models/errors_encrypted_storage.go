package models

import (
	"errors"
	"fmt"
)

// EncryptedStorageErrorKind discriminates every failure surfaced by the
// encrypted storage. Each public operation fails with exactly one
// [EncryptedStorageError].
type EncryptedStorageErrorKind int

const (
	FailedToEncryptData EncryptedStorageErrorKind = iota + 1
	FailedToDecryptData
	InvalidEncryptionMethod
	InvalidEncryptionKey
	// InvalidCipher means the platform cipher could not be instantiated.
	InvalidCipher
	// PermanentlyInvalidatedKey means the biometric key was invalidated by the
	// platform (new biometric enrollment). The key has been deleted and
	// biometric protection must be enabled again.
	PermanentlyInvalidatedKey
	// UnrecoverablyFailedToEncrypt means the cipher's authentication window
	// expired before encryption.
	UnrecoverablyFailedToEncrypt
	// UnrecoverablyFailedToDecrypt means the cipher's authentication window
	// expired before decryption.
	UnrecoverablyFailedToDecrypt
	KeyServiceFailed
	SecureStorageFailed
	// UnexpectedData means a stored biometric envelope had the wrong shape.
	UnexpectedData
	FailedToEncodeData
	FailedToDecodeData
)

func (k EncryptedStorageErrorKind) String() string {
	switch k {
	case FailedToEncryptData:
		return "FailedToEncryptData"
	case FailedToDecryptData:
		return "FailedToDecryptData"
	case InvalidEncryptionMethod:
		return "InvalidEncryptionMethod"
	case InvalidEncryptionKey:
		return "InvalidEncryptionKey"
	case InvalidCipher:
		return "InvalidCipher"
	case PermanentlyInvalidatedKey:
		return "PermanentlyInvalidatedKey"
	case UnrecoverablyFailedToEncrypt:
		return "UnrecoverablyFailedToEncrypt"
	case UnrecoverablyFailedToDecrypt:
		return "UnrecoverablyFailedToDecrypt"
	case KeyServiceFailed:
		return "KeyServiceFailed"
	case SecureStorageFailed:
		return "SecureStorageFailed"
	case UnexpectedData:
		return "UnexpectedData"
	case FailedToEncodeData:
		return "FailedToEncodeData"
	case FailedToDecodeData:
		return "FailedToDecodeData"
	default:
		return fmt.Sprintf("EncryptedStorageErrorKind(%d)", int(k))
	}
}

// EncryptedStorageError is the single error type returned across the
// encrypted storage boundary. For KeyServiceFailed Err is a
// *[KeyServiceError]; for SecureStorageFailed it is a *[SecureStorageError].
type EncryptedStorageError struct {
	Kind EncryptedStorageErrorKind
	Err  error
}

var (
	ErrFailedToEncryptData          = &EncryptedStorageError{Kind: FailedToEncryptData}
	ErrFailedToDecryptData          = &EncryptedStorageError{Kind: FailedToDecryptData}
	ErrInvalidEncryptionMethod      = &EncryptedStorageError{Kind: InvalidEncryptionMethod}
	ErrInvalidEncryptionKey         = &EncryptedStorageError{Kind: InvalidEncryptionKey}
	ErrInvalidCipher                = &EncryptedStorageError{Kind: InvalidCipher}
	ErrPermanentlyInvalidatedKey    = &EncryptedStorageError{Kind: PermanentlyInvalidatedKey}
	ErrUnrecoverablyFailedToEncrypt = &EncryptedStorageError{Kind: UnrecoverablyFailedToEncrypt}
	ErrUnrecoverablyFailedToDecrypt = &EncryptedStorageError{Kind: UnrecoverablyFailedToDecrypt}
	ErrKeyServiceFailed             = &EncryptedStorageError{Kind: KeyServiceFailed}
	ErrSecureStorageFailed          = &EncryptedStorageError{Kind: SecureStorageFailed}
	ErrUnexpectedData               = &EncryptedStorageError{Kind: UnexpectedData}
	ErrFailedToEncodeData           = &EncryptedStorageError{Kind: FailedToEncodeData}
	ErrFailedToDecodeData           = &EncryptedStorageError{Kind: FailedToDecodeData}
)

// NewEncryptedStorageError builds an EncryptedStorageError of the given kind.
func NewEncryptedStorageError(kind EncryptedStorageErrorKind, cause error) *EncryptedStorageError {
	return &EncryptedStorageError{Kind: kind, Err: cause}
}

// WrapKeyServiceError lifts a key service failure into the encrypted storage
// taxonomy. Errors that are not a *KeyServiceError are classified as unknown
// key service failures first.
func WrapKeyServiceError(err error) *EncryptedStorageError {
	var ksErr *KeyServiceError
	if !errors.As(err, &ksErr) {
		ksErr = NewKeyServiceError(UnknownKeyServiceFailure, err)
	}
	return NewEncryptedStorageError(KeyServiceFailed, ksErr)
}

// WrapSecureStorageError lifts a secure storage failure into the encrypted
// storage taxonomy. Errors that are not a *SecureStorageError are treated as
// load failures.
func WrapSecureStorageError(err error) *EncryptedStorageError {
	var ssErr *SecureStorageError
	if !errors.As(err, &ssErr) {
		ssErr = NewSecureStorageError(FailedToLoadData, err)
	}
	return NewEncryptedStorageError(SecureStorageFailed, ssErr)
}

func (e *EncryptedStorageError) Error() string {
	switch e.Kind {
	case FailedToEncryptData:
		return "failed to encrypt data with specified key" + e.causeSuffix()
	case FailedToDecryptData:
		return "failed to decrypt data with specified key" + e.causeSuffix()
	case InvalidEncryptionMethod:
		return "the encryption method is invalid" + e.causeSuffix()
	case InvalidEncryptionKey:
		return "the encryption key is invalid" + e.causeSuffix()
	case InvalidCipher:
		return "failed to instantiate cipher" + e.causeSuffix()
	case PermanentlyInvalidatedKey:
		return "the biometric key was permanently invalidated" + e.causeSuffix()
	case UnrecoverablyFailedToEncrypt:
		return "unrecoverably failed to encrypt, user not authenticated" + e.causeSuffix()
	case UnrecoverablyFailedToDecrypt:
		return "unrecoverably failed to decrypt, user not authenticated" + e.causeSuffix()
	case KeyServiceFailed:
		return "the key service failed" + e.causeSuffix()
	case SecureStorageFailed:
		return "the secure storage failed" + e.causeSuffix()
	case UnexpectedData:
		return "the secure storage loaded unexpected data" + e.causeSuffix()
	case FailedToEncodeData:
		return "failed to encode data" + e.causeSuffix()
	case FailedToDecodeData:
		return "failed to decode data" + e.causeSuffix()
	default:
		return e.Kind.String() + e.causeSuffix()
	}
}

func (e *EncryptedStorageError) causeSuffix() string {
	if e.Err == nil {
		return ""
	}
	return ": " + e.Err.Error()
}

func (e *EncryptedStorageError) Unwrap() error {
	return e.Err
}

func (e *EncryptedStorageError) Is(target error) bool {
	t, ok := target.(*EncryptedStorageError)
	return ok && t.Kind == e.Kind
}
