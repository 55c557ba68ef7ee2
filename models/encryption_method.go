package models

import (
	"fmt"
	"strings"
)

// EncryptionMethod selects the AEAD algorithm used for stored payloads.
// Ciphertexts do not record the method, so the same value must be used for
// encrypting and decrypting a payload.
type EncryptionMethod int

const (
	// AesGcm is AES in Galois/Counter Mode with a 96-bit nonce and a 128-bit tag.
	AesGcm EncryptionMethod = iota + 1

	// ChaCha20Poly1305 is the IETF ChaCha20-Poly1305 construction with the same
	// nonce and tag sizes as AesGcm.
	ChaCha20Poly1305
)

func (m EncryptionMethod) String() string {
	switch m {
	case AesGcm:
		return "aes-gcm"
	case ChaCha20Poly1305:
		return "chacha20-poly1305"
	default:
		return fmt.Sprintf("encryption-method(%d)", int(m))
	}
}

// ParseEncryptionMethod converts a configuration value into an
// [EncryptionMethod]. Matching is case-insensitive.
func ParseEncryptionMethod(s string) (EncryptionMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aes-gcm", "aesgcm", "aes/gcm/nopadding":
		return AesGcm, nil
	case "chacha20-poly1305", "chacha20poly1305":
		return ChaCha20Poly1305, nil
	default:
		return 0, NewEncryptedStorageError(InvalidEncryptionMethod, fmt.Errorf("unknown encryption method %q", s))
	}
}
