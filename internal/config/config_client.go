package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/tim-encrypted-storage/models"
)

// ClientApp holds application settings of the CLI host.
type ClientApp struct {
	// Namespace prefixes keystore aliases and biometric slot keys.
	Namespace string
	// EncryptionMethod is the parsed payload AEAD.
	EncryptionMethod models.EncryptionMethod
	// MetricsEnabled turns on operation metrics.
	MetricsEnabled bool
}

// ClientAdapter holds key service settings.
type ClientAdapter struct {
	// Realm is the base URL of the key service.
	Realm string
	// APIVersion is the key service API version.
	APIVersion string
	// RequestTimeout is the timeout of one key service round trip.
	RequestTimeout time.Duration
}

// ClientDB contains the secure storage database settings.
type ClientDB struct {
	// DSN is the SQLite file of the secure storage.
	DSN string
}

// ClientKeystore contains the software keystore settings.
type ClientKeystore struct {
	DSN        string
	AuthWindow time.Duration
}

// ClientStorage groups local storage backend settings.
type ClientStorage struct {
	DB       ClientDB
	Keystore ClientKeystore
}

// ClientConfig is the top-level configuration of the CLI host assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	// Args are the positional arguments left after flag parsing: the command
	// name followed by its operands.
	Args []string
}

// GetClientConfig builds and validates the CLI configuration view from the
// merged structured configuration.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, rest, err := loadStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	method, err := models.ParseEncryptionMethod(cfg.App.EncryptionMethod)
	if err != nil {
		return nil, errors.Join(ErrInvalidAppConfigs, err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			Namespace:        cfg.App.Namespace,
			EncryptionMethod: method,
			MetricsEnabled:   cfg.App.MetricsEnabled,
		},
		Adapter: ClientAdapter{
			Realm:          cfg.Adapter.Realm,
			APIVersion:     cfg.Adapter.APIVersion,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
			Keystore: ClientKeystore{
				DSN:        cfg.Storage.Keystore.DSN,
				AuthWindow: cfg.Storage.Keystore.AuthWindow,
			},
		},
		Args: rest,
	}

	return clientCfg, clientCfg.validate()
}
