// Package biometric prepares keystore ciphers for wrapping and unwrapping
// long secrets, and encodes the wrapped result as a storable envelope.
package biometric

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/MKhiriev/tim-encrypted-storage/internal/keystore"
	"github.com/MKhiriev/tim-encrypted-storage/internal/logger"
	"github.com/MKhiriev/tim-encrypted-storage/models"
)

// maxEncryptAttempts bounds key recreation when the fresh key turns out to
// be invalidated.
const maxEncryptAttempts = 2

// Helper builds initialized ciphers on top of a [keystore.SecretKeyManager].
type Helper struct {
	keys   *keystore.SecretKeyManager
	logger *logger.Logger
}

func NewHelper(keys *keystore.SecretKeyManager, log *logger.Logger) *Helper {
	return &Helper{
		keys:   keys,
		logger: log,
	}
}

// GetInitializedCipherForEncryption returns a cipher in encrypt mode bound to
// a freshly created secret key for keyID. The caller must authenticate the
// cipher before use.
func (h *Helper) GetInitializedCipherForEncryption(ctx context.Context, keyID string) (keystore.Cipher, error) {
	var lastErr error

	for attempt := 1; attempt <= maxEncryptAttempts; attempt++ {
		c, err := h.keys.NewCipher()
		if err != nil {
			return nil, models.NewEncryptedStorageError(models.InvalidCipher, err)
		}

		key, err := h.keys.CreateNewSecretKey(ctx, keyID)
		if err != nil {
			return nil, err
		}

		err = c.Init(keystore.EncryptMode, key, nil)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, keystore.ErrKeyPermanentlyInvalidated) {
			return nil, models.NewEncryptedStorageError(models.InvalidEncryptionKey, err)
		}

		lastErr = err
		h.logger.Warn().
			Str("key_id", keyID).
			Int("attempt", attempt).
			Msg("new secret key is permanently invalidated, recreating")
		if err = h.keys.DeleteSecretKey(ctx, keyID); err != nil {
			return nil, err
		}
	}

	return nil, models.NewEncryptedStorageError(models.PermanentlyInvalidatedKey, lastErr)
}

// GetInitializedCipherForDecryption returns a cipher in decrypt mode bound to
// the existing secret key for keyID. If the key was invalidated by a
// biometric enrollment change it is deleted and PermanentlyInvalidatedKey is
// returned; biometric protection has to be enabled again.
func (h *Helper) GetInitializedCipherForDecryption(ctx context.Context, keyID string, iv []byte) (keystore.Cipher, error) {
	c, err := h.keys.NewCipher()
	if err != nil {
		return nil, models.NewEncryptedStorageError(models.InvalidCipher, err)
	}

	key, err := h.keys.GetSecretKey(ctx, keyID)
	if err != nil {
		return nil, err
	}

	err = c.Init(keystore.DecryptMode, key, iv)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, keystore.ErrKeyPermanentlyInvalidated) {
		return nil, models.NewEncryptedStorageError(models.InvalidEncryptionKey, err)
	}

	h.logger.Warn().Str("key_id", keyID).Msg("secret key is permanently invalidated, deleting")
	if delErr := h.keys.DeleteSecretKey(ctx, keyID); delErr != nil {
		h.logger.Err(delErr).Str("key_id", keyID).Msg("failed to delete invalidated secret key")
	}
	return nil, models.NewEncryptedStorageError(models.PermanentlyInvalidatedKey, err)
}

// Encrypt runs an authenticated encrypt-mode cipher over data.
func (h *Helper) Encrypt(c keystore.Cipher, data []byte) ([]byte, error) {
	if c == nil {
		return nil, models.NewEncryptedStorageError(models.InvalidCipher, keystore.ErrCipherNotInitialized)
	}

	out, err := c.DoFinal(data)
	if err == nil {
		return out, nil
	}
	if isUserNotAuthenticated(err) {
		return nil, models.NewEncryptedStorageError(models.UnrecoverablyFailedToEncrypt, err)
	}
	return nil, models.NewEncryptedStorageError(models.FailedToEncryptData, err)
}

// Decrypt runs an authenticated decrypt-mode cipher over data.
func (h *Helper) Decrypt(c keystore.Cipher, data []byte) ([]byte, error) {
	if c == nil {
		return nil, models.NewEncryptedStorageError(models.InvalidCipher, keystore.ErrCipherNotInitialized)
	}

	out, err := c.DoFinal(data)
	if err == nil {
		return out, nil
	}
	if isUserNotAuthenticated(err) {
		return nil, models.NewEncryptedStorageError(models.UnrecoverablyFailedToDecrypt, err)
	}
	return nil, models.NewEncryptedStorageError(models.FailedToDecryptData, err)
}

// SecretKeyID returns the id of the secret key c was initialized with, when
// that key is managed under this helper's namespace.
func (h *Helper) SecretKeyID(c keystore.Cipher) (string, bool) {
	if c == nil {
		return "", false
	}
	return h.keys.KeyID(c.Alias())
}

// DeleteSecretKey removes the secret key for keyID.
func (h *Helper) DeleteSecretKey(ctx context.Context, keyID string) error {
	return h.keys.DeleteSecretKey(ctx, keyID)
}

// EncodeEnvelope serializes the wrapped long secret, its IV and the id of
// the secret key that wrapped it.
func EncodeEnvelope(data, iv []byte, secretKeyID string) ([]byte, error) {
	raw, err := json.Marshal(models.BiometricEncryptedData{
		EncryptedData:        data,
		InitializationVector: iv,
		SecretKeyID:          secretKeyID,
	})
	if err != nil {
		return nil, models.NewEncryptedStorageError(models.FailedToEncodeData, err)
	}
	return raw, nil
}

var errEmptyEnvelope = errors.New("envelope has no ciphertext or no initialization vector")

// DecodeEnvelope parses an envelope written by EncodeEnvelope (or by the
// mobile clients, which use the same JSON layout).
func DecodeEnvelope(raw []byte) (models.BiometricEncryptedData, error) {
	var env models.BiometricEncryptedData
	if err := json.Unmarshal(raw, &env); err != nil {
		return models.BiometricEncryptedData{}, models.NewEncryptedStorageError(models.FailedToDecodeData, err)
	}
	if len(env.EncryptedData) == 0 || len(env.InitializationVector) == 0 {
		return models.BiometricEncryptedData{}, models.NewEncryptedStorageError(models.UnexpectedData, errEmptyEnvelope)
	}
	return env, nil
}

// isUserNotAuthenticated matches an illegal-block-size failure caused by an
// expired or missing user authentication.
func isUserNotAuthenticated(err error) bool {
	return errors.Is(err, keystore.ErrIllegalBlockSize) && errors.Is(err, keystore.ErrKeyUserNotAuthenticated)
}
