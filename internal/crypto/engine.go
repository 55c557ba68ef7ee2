// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/tim-encrypted-storage/models"
	"github.com/awnumar/memguard"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// NonceSize is the AEAD nonce length prepended to every blob.
	NonceSize = 12
	// TagSize is the AEAD authentication tag length appended by Seal.
	TagSize = 16
)

var (
	ErrBlobTooShort = errors.New("ciphertext is shorter than nonce and tag")
	ErrEmptyKey     = errors.New("encryption key is empty")
)

// cipherEngine is the private implementation of [CipherEngine].
type cipherEngine struct {
	random io.Reader
}

// NewCipherEngine constructs a [CipherEngine] that draws nonces from the OS
// CSPRNG.
func NewCipherEngine() CipherEngine {
	return &cipherEngine{random: rand.Reader}
}

// Encrypt implements [CipherEngine].
func (c *cipherEngine) Encrypt(method models.EncryptionMethod, key, plaintext []byte) ([]byte, error) {
	aead, err := newAEAD(method, key)
	if err != nil {
		return nil, encryptError(err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err = io.ReadFull(c.random, nonce); err != nil {
		return nil, models.NewEncryptedStorageError(models.FailedToEncryptData, fmt.Errorf("read nonce: %w", err))
	}

	// nonce ‖ ciphertext ‖ tag
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt implements [CipherEngine].
func (c *cipherEngine) Decrypt(method models.EncryptionMethod, key, blob []byte) ([]byte, error) {
	aead, err := newAEAD(method, key)
	if err != nil {
		return nil, decryptError(err)
	}

	if len(blob) < aead.NonceSize()+aead.Overhead() {
		return nil, models.NewEncryptedStorageError(models.FailedToDecryptData, ErrBlobTooShort)
	}

	nonce, sealed := blob[:aead.NonceSize()], blob[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, models.NewEncryptedStorageError(models.FailedToDecryptData, err)
	}
	return plaintext, nil
}

// EncryptWithKeyModel implements [CipherEngine].
func (c *cipherEngine) EncryptWithKeyModel(model models.KeyModel, method models.EncryptionMethod, data []byte) ([]byte, error) {
	key, err := DecodeKey(model.Key)
	if err != nil {
		return nil, models.NewEncryptedStorageError(models.FailedToEncryptData, err)
	}
	defer memguard.WipeBytes(key)

	return c.Encrypt(method, key, data)
}

// DecryptWithKeyModel implements [CipherEngine].
func (c *cipherEngine) DecryptWithKeyModel(model models.KeyModel, method models.EncryptionMethod, blob []byte) ([]byte, error) {
	key, err := DecodeKey(model.Key)
	if err != nil {
		return nil, models.NewEncryptedStorageError(models.FailedToDecryptData, err)
	}
	defer memguard.WipeBytes(key)

	return c.Decrypt(method, key, blob)
}

// DecodeKey decodes a base64 key as issued by the key service. The standard
// alphabet is tried first, then the raw and URL-safe variants.
func DecodeKey(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, ErrEmptyKey
	}

	var firstErr error
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		key, err := enc.DecodeString(encoded)
		if err == nil {
			return key, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, fmt.Errorf("decode key: %w", firstErr)
}

func newAEAD(method models.EncryptionMethod, key []byte) (cipher.AEAD, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}

	switch method {
	case models.AesGcm:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		return cipher.NewGCM(block)
	case models.ChaCha20Poly1305:
		return chacha20poly1305.New(key)
	default:
		return nil, models.NewEncryptedStorageError(models.InvalidEncryptionMethod,
			fmt.Errorf("unsupported encryption method %d", int(method)))
	}
}

// encryptError keeps InvalidEncryptionMethod as is and wraps everything else
// into FailedToEncryptData.
func encryptError(err error) error {
	if errors.Is(err, models.ErrInvalidEncryptionMethod) {
		return err
	}
	return models.NewEncryptedStorageError(models.FailedToEncryptData, err)
}

func decryptError(err error) error {
	if errors.Is(err, models.ErrInvalidEncryptionMethod) {
		return err
	}
	return models.NewEncryptedStorageError(models.FailedToDecryptData, err)
}
