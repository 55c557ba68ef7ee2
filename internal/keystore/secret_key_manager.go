package keystore

import (
	"context"
	"errors"
	"strings"

	"github.com/MKhiriev/tim-encrypted-storage/internal/logger"
	"github.com/MKhiriev/tim-encrypted-storage/models"
)

// BiometricKeySpec is the KeySpec of every key that wraps a long secret.
var BiometricKeySpec = KeySpec{
	Algorithm:                        "AES",
	Size:                             256,
	UserAuthenticationRequired:       true,
	InvalidatedByBiometricEnrollment: true,
}

// SecretKeyManager manages the per-keyId secret keys in a [Keystore]. Keys are
// addressed by "<namespace>.secretKey.<keyId>". Every failure is an
// InvalidEncryptionKey *models.EncryptedStorageError.
type SecretKeyManager struct {
	keystore  Keystore
	namespace string
	logger    *logger.Logger
}

func NewSecretKeyManager(ks Keystore, namespace string, log *logger.Logger) *SecretKeyManager {
	return &SecretKeyManager{
		keystore:  ks,
		namespace: namespace,
		logger:    log,
	}
}

// Alias returns the keystore alias of keyID's secret key.
func (m *SecretKeyManager) Alias(keyID string) string {
	return m.namespace + ".secretKey." + keyID
}

// KeyID is the inverse of Alias. It reports false for aliases outside this
// manager's namespace.
func (m *SecretKeyManager) KeyID(alias string) (string, bool) {
	keyID, ok := strings.CutPrefix(alias, m.Alias(""))
	if !ok || keyID == "" {
		return "", false
	}
	return keyID, true
}

// GetOrCreateSecretKey returns the existing key for keyID or generates one.
func (m *SecretKeyManager) GetOrCreateSecretKey(ctx context.Context, keyID string) (*SecretKey, error) {
	key, err := m.keystore.GetKey(ctx, m.Alias(keyID))
	if err == nil {
		return key, nil
	}
	if !errors.Is(err, ErrKeyNotFound) {
		return nil, models.NewEncryptedStorageError(models.InvalidEncryptionKey, err)
	}

	return m.generate(ctx, keyID)
}

// GetSecretKey returns the existing key for keyID. A missing key fails with
// InvalidEncryptionKey wrapping ErrKeyNotFound.
func (m *SecretKeyManager) GetSecretKey(ctx context.Context, keyID string) (*SecretKey, error) {
	key, err := m.keystore.GetKey(ctx, m.Alias(keyID))
	if err != nil {
		return nil, models.NewEncryptedStorageError(models.InvalidEncryptionKey, err)
	}
	return key, nil
}

// CreateNewSecretKey deletes any key for keyID and generates a fresh one.
func (m *SecretKeyManager) CreateNewSecretKey(ctx context.Context, keyID string) (*SecretKey, error) {
	if err := m.DeleteSecretKey(ctx, keyID); err != nil {
		return nil, err
	}
	return m.generate(ctx, keyID)
}

// DeleteSecretKey removes the key for keyID if present.
func (m *SecretKeyManager) DeleteSecretKey(ctx context.Context, keyID string) error {
	if err := m.keystore.DeleteKey(ctx, m.Alias(keyID)); err != nil {
		m.logger.Err(err).Str("key_id", keyID).Msg("failed to delete secret key")
		return models.NewEncryptedStorageError(models.InvalidEncryptionKey, err)
	}
	return nil
}

// NewCipher returns an uninitialized keystore cipher.
func (m *SecretKeyManager) NewCipher() (Cipher, error) {
	return m.keystore.NewCipher(Transformation)
}

func (m *SecretKeyManager) generate(ctx context.Context, keyID string) (*SecretKey, error) {
	key, err := m.keystore.GenerateKey(ctx, m.Alias(keyID), BiometricKeySpec)
	if err != nil {
		m.logger.Err(err).Str("key_id", keyID).Msg("failed to generate secret key")
		return nil, models.NewEncryptedStorageError(models.InvalidEncryptionKey, err)
	}
	m.logger.Debug().Str("key_id", keyID).Msg("generated secret key")
	return key, nil
}
