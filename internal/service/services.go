package service

import (
	"github.com/MKhiriev/tim-encrypted-storage/internal/adapter"
	"github.com/MKhiriev/tim-encrypted-storage/internal/biometric"
	"github.com/MKhiriev/tim-encrypted-storage/internal/config"
	"github.com/MKhiriev/tim-encrypted-storage/internal/crypto"
	"github.com/MKhiriev/tim-encrypted-storage/internal/keystore"
	"github.com/MKhiriev/tim-encrypted-storage/internal/logger"
	"github.com/MKhiriev/tim-encrypted-storage/internal/metrics"
	"github.com/MKhiriev/tim-encrypted-storage/internal/store"
)

// Services bundles the encrypted storage with the keystore it was built on,
// so hosts can also reach keystore-level operations such as simulating an
// enrollment change.
type Services struct {
	EncryptedStorage EncryptedStorage
	Keystore         keystore.Keystore
	SecretKeys       *keystore.SecretKeyManager
}

func NewServices(
	secureStorage store.SecureStorage,
	keyService adapter.KeyService,
	ks keystore.Keystore,
	appCfg config.ClientApp,
	log *logger.Logger,
	m *metrics.Metrics,
) (*Services, error) {
	namespace := appCfg.Namespace
	if namespace == "" {
		namespace = config.DefaultNamespace
	}

	secretKeys := keystore.NewSecretKeyManager(ks, namespace, log)
	helper := biometric.NewHelper(secretKeys, log)

	storage, err := NewEncryptedStorage(secureStorage, keyService, crypto.NewCipherEngine(), helper, appCfg, log, m)
	if err != nil {
		return nil, err
	}

	return &Services{
		EncryptedStorage: storage,
		Keystore:         ks,
		SecretKeys:       secretKeys,
	}, nil
}
