// Package keystore is the platform keystore of the encrypted storage: it
// holds the per-keyId AES keys that wrap long secrets for biometric access,
// and hands out ciphers bound to those keys.
//
// Two software backends are provided. [NewMemoryKeystore] keeps key material
// in memguard enclaves for the lifetime of the process; [NewSQLiteKeystore]
// persists entries so they survive restarts. Both model the hardware rules
// the storage depends on: keys created with UserAuthenticationRequired need a
// successful [Cipher.Authenticate] before each operation, and keys created
// with InvalidatedByBiometricEnrollment become permanently unusable after
// [Keystore.EnrollmentChanged].
package keystore

import (
	"context"
	"errors"
	"time"

	"github.com/awnumar/memguard"
)

//go:generate mockgen -source=keystore.go -destination=../mock/keystore_mock.go -package=mock

// Transformation is the only cipher transformation the keystore supports.
const Transformation = "AES/CBC/PKCS7Padding"

// DefaultAuthWindow is how long one Authenticate call authorizes an operation
// when no window is configured.
const DefaultAuthWindow = 30 * time.Second

var (
	ErrKeyNotFound               = errors.New("key not found in keystore")
	ErrUnsupportedKeySpec        = errors.New("unsupported key spec")
	ErrUnsupportedTransformation = errors.New("unsupported cipher transformation")
	ErrKeyPermanentlyInvalidated = errors.New("key permanently invalidated")
	ErrCipherNotInitialized      = errors.New("cipher is not initialized")
	ErrInvalidIV                 = errors.New("invalid initialization vector")
	ErrIllegalBlockSize          = errors.New("illegal block size")
	ErrKeyUserNotAuthenticated   = errors.New("key user not authenticated")
	ErrBadPadding                = errors.New("bad padding")
)

// KeySpec describes a key to generate.
type KeySpec struct {
	// Algorithm is the key algorithm; only "AES" is supported.
	Algorithm string
	// Size is the key size in bits: 128, 192 or 256.
	Size int
	// UserAuthenticationRequired demands a successful biometric prompt
	// before every cipher operation with the key.
	UserAuthenticationRequired bool
	// InvalidatedByBiometricEnrollment makes the key permanently unusable
	// once biometric enrollment changes.
	InvalidatedByBiometricEnrollment bool
}

func (s KeySpec) validate() error {
	if s.Algorithm != "AES" {
		return ErrUnsupportedKeySpec
	}
	switch s.Size {
	case 128, 192, 256:
		return nil
	default:
		return ErrUnsupportedKeySpec
	}
}

// SecretKey is a handle to a keystore entry. Its material never leaves the
// keystore package.
type SecretKey struct {
	alias       string
	spec        KeySpec
	material    *memguard.Enclave
	invalidated bool
}

func (k *SecretKey) Alias() string { return k.alias }

func (k *SecretKey) Spec() KeySpec { return k.spec }

// PermanentlyInvalidated reports whether the key was invalidated by a
// biometric enrollment change after it was created.
func (k *SecretKey) PermanentlyInvalidated() bool { return k.invalidated }

// Keystore is the platform keystore contract.
type Keystore interface {
	// GetKey returns the key under alias, or ErrKeyNotFound.
	GetKey(ctx context.Context, alias string) (*SecretKey, error)
	// GenerateKey creates a key under alias, replacing any existing one.
	GenerateKey(ctx context.Context, alias string, spec KeySpec) (*SecretKey, error)
	// DeleteKey removes the key under alias. Deleting a missing key is not
	// an error.
	DeleteKey(ctx context.Context, alias string) error
	ContainsAlias(ctx context.Context, alias string) (bool, error)
	// NewCipher returns an uninitialized cipher for transformation.
	NewCipher(transformation string) (Cipher, error)
	// EnrollmentChanged records a biometric enrollment change. Every existing
	// key created with InvalidatedByBiometricEnrollment becomes permanently
	// invalidated.
	EnrollmentChanged(ctx context.Context) error
}

// CipherMode is the direction a Cipher is initialized for.
type CipherMode int

const (
	EncryptMode CipherMode = iota + 1
	DecryptMode
)

// Cipher is a keystore-bound block cipher.
type Cipher interface {
	// Init binds the cipher to key. In EncryptMode a nil iv makes the cipher
	// choose a random one; in DecryptMode iv is required. Init fails with
	// ErrKeyPermanentlyInvalidated for an invalidated key.
	Init(mode CipherMode, key *SecretKey, iv []byte) error
	// IV returns the initialization vector in use.
	IV() []byte
	// Alias returns the alias of the key the cipher was initialized with,
	// or "" before Init.
	Alias() string
	// Authenticate records a successful biometric prompt for this cipher and
	// opens the authorization window for one operation.
	Authenticate()
	// DoFinal encrypts or decrypts data. For keys that require user
	// authentication it fails with ErrIllegalBlockSize wrapping
	// ErrKeyUserNotAuthenticated outside the authorization window.
	DoFinal(data []byte) ([]byte, error)
}

// cipherFactory is shared by the keystore backends.
type cipherFactory struct {
	authWindow time.Duration
	now        func() time.Time
}

func newCipherFactory(authWindow time.Duration) cipherFactory {
	if authWindow <= 0 {
		authWindow = DefaultAuthWindow
	}
	return cipherFactory{authWindow: authWindow, now: time.Now}
}

func (f cipherFactory) NewCipher(transformation string) (Cipher, error) {
	if transformation != Transformation {
		return nil, ErrUnsupportedTransformation
	}
	return &cbcCipher{window: f.authWindow, now: f.now}, nil
}
