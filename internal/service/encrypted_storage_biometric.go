package service

import (
	"context"
	"time"

	"github.com/MKhiriev/tim-encrypted-storage/internal/biometric"
	"github.com/MKhiriev/tim-encrypted-storage/internal/keystore"
	"github.com/MKhiriev/tim-encrypted-storage/models"
)

func (s *encryptedStorage) EnableBiometric(ctx context.Context, keyID, secret string, cipher keystore.Cipher) (err error) {
	started := time.Now()
	log := s.opLogger("enable_biometric", "", keyID)
	defer func() { s.finish("enable_biometric", log, started, err) }()

	if err = validateKeyID(keyID); err != nil {
		return err
	}

	key, err := s.keyService.GetKeyViaSecret(ctx, secret, keyID)
	if err != nil {
		return keyServiceFailed(err)
	}
	return s.storeLongSecret(context.WithoutCancel(ctx), keyID, key.LongSecret, cipher)
}

func (s *encryptedStorage) EnableBiometricWithLongSecret(ctx context.Context, keyID, longSecret string, cipher keystore.Cipher) (err error) {
	started := time.Now()
	log := s.opLogger("enable_biometric_with_long_secret", "", keyID)
	defer func() { s.finish("enable_biometric_with_long_secret", log, started, err) }()

	if err = validateKeyID(keyID); err != nil {
		return err
	}
	return s.storeLongSecret(ctx, keyID, longSecret, cipher)
}

func (s *encryptedStorage) StoreViaBiometric(ctx context.Context, storageKey models.StorageKey, data []byte, keyID string, cipher keystore.Cipher) (err error) {
	started := time.Now()
	log := s.opLogger("store_via_biometric", storageKey, keyID)
	defer func() { s.finish("store_via_biometric", log, started, err) }()

	if err = s.validate(storageKey, keyID); err != nil {
		return err
	}

	longSecret, err := s.loadLongSecret(ctx, keyID, cipher)
	if err != nil {
		return err
	}

	key, err := s.keyService.GetKeyViaLongSecret(ctx, longSecret, keyID)
	if err != nil {
		return keyServiceFailed(err)
	}
	return s.encryptAndStore(context.WithoutCancel(ctx), storageKey, data, key)
}

func (s *encryptedStorage) StoreViaBiometricWithNewKey(ctx context.Context, storageKey models.StorageKey, data []byte, secret string, cipher keystore.Cipher) (res models.KeyCreationResult, err error) {
	started := time.Now()
	log := s.opLogger("store_via_biometric_with_new_key", storageKey, "")
	defer func() { s.finish("store_via_biometric_with_new_key", log, started, err) }()

	if err = s.validateStorageKey(storageKey); err != nil {
		return models.KeyCreationResult{}, err
	}

	key, err := s.keyService.CreateKey(ctx, secret)
	if err != nil {
		return models.KeyCreationResult{}, keyServiceFailed(err)
	}
	log.Info().Str("key_id", key.KeyID).Msg("key created")

	created := models.KeyCreationResult{KeyID: key.KeyID, LongSecret: key.LongSecret}
	local := context.WithoutCancel(ctx)
	if err = s.storeLongSecret(local, key.KeyID, key.LongSecret, cipher); err != nil {
		log.Warn().Str("key_id", key.KeyID).Msg("created key is kept without biometric protection")
		return created, err
	}
	if err = s.encryptAndStore(local, storageKey, data, key); err != nil {
		log.Warn().Str("key_id", key.KeyID).Msg("created key is kept although storing data failed")
		return created, err
	}

	return created, nil
}

func (s *encryptedStorage) GetViaBiometric(ctx context.Context, storageKey models.StorageKey, keyID string, cipher keystore.Cipher) (res models.BiometricLoadResult, err error) {
	started := time.Now()
	log := s.opLogger("get_via_biometric", storageKey, keyID)
	defer func() { s.finish("get_via_biometric", log, started, err) }()

	if err = s.validate(storageKey, keyID); err != nil {
		return models.BiometricLoadResult{}, err
	}

	longSecret, err := s.loadLongSecret(ctx, keyID, cipher)
	if err != nil {
		return models.BiometricLoadResult{}, err
	}

	key, err := s.keyService.GetKeyViaLongSecret(ctx, longSecret, keyID)
	if err != nil {
		return models.BiometricLoadResult{}, keyServiceFailed(err)
	}

	data, err := s.loadAndDecrypt(context.WithoutCancel(ctx), storageKey, key)
	if err != nil {
		return models.BiometricLoadResult{}, err
	}
	return models.BiometricLoadResult{Data: data, LongSecret: longSecret}, nil
}

func (s *encryptedStorage) GetEncryptCipher(ctx context.Context, keyID string) (c keystore.Cipher, err error) {
	started := time.Now()
	log := s.opLogger("get_encrypt_cipher", "", keyID)
	defer func() { s.finish("get_encrypt_cipher", log, started, err) }()

	if err = validateKeyID(keyID); err != nil {
		return nil, err
	}

	c, err = s.biometric.GetInitializedCipherForEncryption(ctx, keyID)
	if err != nil {
		return nil, asStorageError(err, models.InvalidCipher)
	}
	return c, nil
}

func (s *encryptedStorage) GetDecryptCipher(ctx context.Context, keyID string) (c keystore.Cipher, err error) {
	started := time.Now()
	log := s.opLogger("get_decrypt_cipher", "", keyID)
	defer func() { s.finish("get_decrypt_cipher", log, started, err) }()

	if err = validateKeyID(keyID); err != nil {
		return nil, err
	}
	return s.decryptCipher(ctx, keyID, "")
}

func (s *encryptedStorage) GetDecryptCipherFor(ctx context.Context, keyID, secretKeyID string) (c keystore.Cipher, err error) {
	started := time.Now()
	log := s.opLogger("get_decrypt_cipher_for", "", keyID)
	defer func() { s.finish("get_decrypt_cipher_for", log, started, err) }()

	if err = validateKeyID(keyID); err != nil {
		return nil, err
	}
	if err = validateKeyID(secretKeyID); err != nil {
		return nil, err
	}
	return s.decryptCipher(ctx, keyID, secretKeyID)
}

// decryptCipher builds a decrypt cipher for the slot of keyID. An empty
// secretKeyID is resolved from the envelope.
func (s *encryptedStorage) decryptCipher(ctx context.Context, keyID, secretKeyID string) (keystore.Cipher, error) {
	env, err := s.loadEnvelope(ctx, keyID)
	if err != nil {
		return nil, err
	}
	if secretKeyID == "" {
		secretKeyID = envelopeSecretKeyID(env, keyID)
	}

	c, err := s.biometric.GetInitializedCipherForDecryption(ctx, secretKeyID, env.InitializationVector)
	if err != nil {
		return nil, asStorageError(err, models.InvalidCipher)
	}
	return c, nil
}

// envelopeSecretKeyID returns the id of the secret key that wrapped env.
// Envelopes written without one were wrapped under keyID's own key.
func envelopeSecretKeyID(env models.BiometricEncryptedData, keyID string) string {
	if env.SecretKeyID != "" {
		return env.SecretKeyID
	}
	return keyID
}

// storeLongSecret wraps longSecret with an authenticated encrypt cipher and
// stores the envelope, together with the id of the wrapping secret key, in
// the biometric slot for keyID.
func (s *encryptedStorage) storeLongSecret(ctx context.Context, keyID, longSecret string, cipher keystore.Cipher) error {
	wrapped, err := s.biometric.Encrypt(cipher, []byte(longSecret))
	if err != nil {
		return asStorageError(err, models.FailedToEncryptData)
	}

	secretKeyID, ok := s.biometric.SecretKeyID(cipher)
	if !ok {
		secretKeyID = keyID
	}

	raw, err := biometric.EncodeEnvelope(wrapped, cipher.IV(), secretKeyID)
	if err != nil {
		return asStorageError(err, models.FailedToEncodeData)
	}

	return secureStorageFailed(s.storage.StoreBiometricProtected(ctx, raw, s.longSecretStorageKey(keyID)))
}

// loadLongSecret reads the biometric slot for keyID and unwraps the long
// secret with an authenticated decrypt cipher.
func (s *encryptedStorage) loadLongSecret(ctx context.Context, keyID string, cipher keystore.Cipher) (string, error) {
	env, err := s.loadEnvelope(ctx, keyID)
	if err != nil {
		return "", err
	}

	plain, err := s.biometric.Decrypt(cipher, env.EncryptedData)
	if err != nil {
		return "", asStorageError(err, models.FailedToDecryptData)
	}
	return string(plain), nil
}

func (s *encryptedStorage) loadEnvelope(ctx context.Context, keyID string) (models.BiometricEncryptedData, error) {
	raw, err := s.storage.GetBiometricProtected(ctx, s.longSecretStorageKey(keyID))
	if err != nil {
		return models.BiometricEncryptedData{}, secureStorageFailed(err)
	}

	env, err := biometric.DecodeEnvelope(raw)
	if err != nil {
		return models.BiometricEncryptedData{}, asStorageError(err, models.FailedToDecodeData)
	}
	return env, nil
}
