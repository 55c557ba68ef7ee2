package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/tim-encrypted-storage/internal/adapter"
	"github.com/MKhiriev/tim-encrypted-storage/internal/biometric"
	"github.com/MKhiriev/tim-encrypted-storage/internal/config"
	"github.com/MKhiriev/tim-encrypted-storage/internal/crypto"
	"github.com/MKhiriev/tim-encrypted-storage/internal/logger"
	"github.com/MKhiriev/tim-encrypted-storage/internal/metrics"
	"github.com/MKhiriev/tim-encrypted-storage/internal/store"
	"github.com/MKhiriev/tim-encrypted-storage/models"
)

type encryptedStorage struct {
	storage    store.SecureStorage
	keyService adapter.KeyService
	engine     crypto.CipherEngine
	biometric  *biometric.Helper

	method    models.EncryptionMethod
	namespace string

	logger  *logger.Logger
	metrics *metrics.Metrics
}

// NewEncryptedStorage wires the collaborators into an [EncryptedStorage].
// It owns none of them. m may be nil.
func NewEncryptedStorage(
	secureStorage store.SecureStorage,
	keyService adapter.KeyService,
	engine crypto.CipherEngine,
	helper *biometric.Helper,
	appCfg config.ClientApp,
	log *logger.Logger,
	m *metrics.Metrics,
) (EncryptedStorage, error) {
	if secureStorage == nil || keyService == nil || engine == nil || helper == nil {
		return nil, ErrNilCollaborator
	}

	namespace := appCfg.Namespace
	if namespace == "" {
		namespace = config.DefaultNamespace
	}
	method := appCfg.EncryptionMethod
	if method == 0 {
		method = models.AesGcm
	}
	if log == nil {
		log = logger.Nop()
	}

	return &encryptedStorage{
		storage:    secureStorage,
		keyService: keyService,
		engine:     engine,
		biometric:  helper,
		method:     method,
		namespace:  namespace,
		logger:     log,
		metrics:    m,
	}, nil
}

// longSecretStorageKey names the biometric slot for keyID. The namespace
// prefix keeps it apart from caller-chosen storage keys.
func (s *encryptedStorage) longSecretStorageKey(keyID string) string {
	return fmt.Sprintf("%s.longSecret.%s", s.namespace, keyID)
}

// finish logs the outcome of op and records it in metrics.
func (s *encryptedStorage) finish(op string, log *logger.Logger, started time.Time, err error) {
	s.metrics.Observe(metrics.ComponentStorage, op, started, err)
	if err != nil {
		log.Err(err).Dur("elapsed", time.Since(started)).Msg("operation failed")
		return
	}
	log.Debug().Dur("elapsed", time.Since(started)).Msg("operation succeeded")
}

func (s *encryptedStorage) HasValue(ctx context.Context, storageKey models.StorageKey) bool {
	return s.storage.HasValue(ctx, storageKey)
}

func (s *encryptedStorage) HasBiometricProtectedValue(ctx context.Context, storageKey models.StorageKey, keyID string) bool {
	return s.storage.HasBiometricProtectedValue(ctx, s.longSecretStorageKey(keyID)) &&
		s.storage.HasValue(ctx, storageKey)
}

func (s *encryptedStorage) Remove(ctx context.Context, storageKey models.StorageKey) (err error) {
	started := time.Now()
	log := s.opLogger("remove", storageKey, "")
	defer func() { s.finish("remove", log, started, err) }()

	if err = s.validateStorageKey(storageKey); err != nil {
		return err
	}
	return secureStorageFailed(s.storage.Remove(ctx, storageKey))
}

// RemoveLongSecret deletes the secret key recorded in the envelope, or the
// one for keyID when there is no readable envelope. It attempts both
// deletions even if the first one fails and reports the first failure.
func (s *encryptedStorage) RemoveLongSecret(ctx context.Context, keyID string) (err error) {
	started := time.Now()
	log := s.opLogger("remove_long_secret", "", keyID)
	defer func() { s.finish("remove_long_secret", log, started, err) }()

	if err = validateKeyID(keyID); err != nil {
		return err
	}

	secretKeyID := keyID
	if env, envErr := s.loadEnvelope(ctx, keyID); envErr == nil {
		secretKeyID = envelopeSecretKeyID(env, keyID)
	}
	if secretKeyID != keyID {
		log.Debug().Str("secret_key_id", secretKeyID).Msg("long secret is wrapped under another secret key")
	}

	storageErr := secureStorageFailed(s.storage.Remove(ctx, s.longSecretStorageKey(keyID)))
	keyErr := asStorageError(s.biometric.DeleteSecretKey(ctx, secretKeyID), models.InvalidEncryptionKey)
	if storageErr != nil {
		return storageErr
	}
	return keyErr
}

func (s *encryptedStorage) Store(ctx context.Context, secret string, storageKey models.StorageKey, data []byte, keyID string) (err error) {
	started := time.Now()
	log := s.opLogger("store", storageKey, keyID)
	defer func() { s.finish("store", log, started, err) }()

	if err = s.validate(storageKey, keyID); err != nil {
		return err
	}

	key, err := s.keyService.GetKeyViaSecret(ctx, secret, keyID)
	if err != nil {
		return keyServiceFailed(err)
	}
	return s.encryptAndStore(context.WithoutCancel(ctx), storageKey, data, key)
}

func (s *encryptedStorage) StoreWithLongSecret(ctx context.Context, longSecret string, storageKey models.StorageKey, data []byte, keyID string) (err error) {
	started := time.Now()
	log := s.opLogger("store_with_long_secret", storageKey, keyID)
	defer func() { s.finish("store_with_long_secret", log, started, err) }()

	if err = s.validate(storageKey, keyID); err != nil {
		return err
	}

	key, err := s.keyService.GetKeyViaLongSecret(ctx, longSecret, keyID)
	if err != nil {
		return keyServiceFailed(err)
	}
	return s.encryptAndStore(context.WithoutCancel(ctx), storageKey, data, key)
}

func (s *encryptedStorage) StoreWithNewKey(ctx context.Context, secret string, storageKey models.StorageKey, data []byte) (res models.KeyCreationResult, err error) {
	started := time.Now()
	log := s.opLogger("store_with_new_key", storageKey, "")
	defer func() { s.finish("store_with_new_key", log, started, err) }()

	if err = s.validateStorageKey(storageKey); err != nil {
		return models.KeyCreationResult{}, err
	}

	key, err := s.keyService.CreateKey(ctx, secret)
	if err != nil {
		return models.KeyCreationResult{}, keyServiceFailed(err)
	}
	log.Info().Str("key_id", key.KeyID).Msg("key created")

	created := models.KeyCreationResult{KeyID: key.KeyID, LongSecret: key.LongSecret}
	if err = s.encryptAndStore(context.WithoutCancel(ctx), storageKey, data, key); err != nil {
		log.Warn().Str("key_id", key.KeyID).Msg("created key is kept although storing data failed")
		return created, err
	}
	return created, nil
}

func (s *encryptedStorage) Get(ctx context.Context, secret string, storageKey models.StorageKey, keyID string) (data []byte, err error) {
	started := time.Now()
	log := s.opLogger("get", storageKey, keyID)
	defer func() { s.finish("get", log, started, err) }()

	if err = s.validate(storageKey, keyID); err != nil {
		return nil, err
	}

	key, err := s.keyService.GetKeyViaSecret(ctx, secret, keyID)
	if err != nil {
		return nil, keyServiceFailed(err)
	}
	return s.loadAndDecrypt(context.WithoutCancel(ctx), storageKey, key)
}

func (s *encryptedStorage) GetWithLongSecret(ctx context.Context, longSecret string, storageKey models.StorageKey, keyID string) (data []byte, err error) {
	started := time.Now()
	log := s.opLogger("get_with_long_secret", storageKey, keyID)
	defer func() { s.finish("get_with_long_secret", log, started, err) }()

	if err = s.validate(storageKey, keyID); err != nil {
		return nil, err
	}

	key, err := s.keyService.GetKeyViaLongSecret(ctx, longSecret, keyID)
	if err != nil {
		return nil, keyServiceFailed(err)
	}
	return s.loadAndDecrypt(context.WithoutCancel(ctx), storageKey, key)
}

func (s *encryptedStorage) encryptAndStore(ctx context.Context, storageKey models.StorageKey, data []byte, key models.KeyModel) error {
	blob, err := s.engine.EncryptWithKeyModel(key, s.method, data)
	if err != nil {
		return asStorageError(err, models.FailedToEncryptData)
	}
	return secureStorageFailed(s.storage.Store(ctx, blob, storageKey))
}

func (s *encryptedStorage) loadAndDecrypt(ctx context.Context, storageKey models.StorageKey, key models.KeyModel) ([]byte, error) {
	blob, err := s.storage.Get(ctx, storageKey)
	if err != nil {
		return nil, secureStorageFailed(err)
	}

	data, err := s.engine.DecryptWithKeyModel(key, s.method, blob)
	if err != nil {
		return nil, asStorageError(err, models.FailedToDecryptData)
	}
	return data, nil
}

func (s *encryptedStorage) opLogger(op string, storageKey models.StorageKey, keyID string) *logger.Logger {
	ctx := s.logger.Operation(op).With()
	if storageKey != "" {
		ctx = ctx.Str("storage_key", storageKey)
	}
	if keyID != "" {
		ctx = ctx.Str("key_id", keyID)
	}
	return &logger.Logger{Logger: ctx.Logger()}
}

func (s *encryptedStorage) validate(storageKey models.StorageKey, keyID string) error {
	if err := s.validateStorageKey(storageKey); err != nil {
		return err
	}
	return validateKeyID(keyID)
}

// validateStorageKey rejects empty keys and keys inside the reserved
// biometric slot space.
func (s *encryptedStorage) validateStorageKey(storageKey models.StorageKey) error {
	if storageKey == "" {
		return models.NewEncryptedStorageError(models.UnexpectedData, ErrEmptyStorageKey)
	}
	if strings.HasPrefix(storageKey, s.longSecretStorageKey("")) {
		return models.NewEncryptedStorageError(models.UnexpectedData, ErrReservedStorageKey)
	}
	return nil
}

func validateKeyID(keyID string) error {
	if keyID == "" {
		return models.NewEncryptedStorageError(models.UnexpectedData, ErrEmptyKeyID)
	}
	return nil
}
