// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// encrypted storage host. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// an optional JSON file and finally the built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the storage namespace, the payload encryption method and
	// the metrics toggle.
	App App `envPrefix:"APP_"`

	// Storage holds the SQLite locations of the secure storage and the
	// software keystore.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the key service endpoint settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// Namespace prefixes every keystore alias and biometric slot key.
	// Env: APP_NAMESPACE
	Namespace string `env:"NAMESPACE"`

	// EncryptionMethod is the AEAD used for stored payloads
	// ("aes-gcm" or "chacha20-poly1305").
	// Env: APP_ENCRYPTION_METHOD
	EncryptionMethod string `env:"ENCRYPTION_METHOD"`

	// MetricsEnabled turns on operation metrics.
	// Env: APP_METRICS_ENABLED
	MetricsEnabled bool `env:"METRICS_ENABLED"`
}

// Storage groups the configuration for the local persistence backends.
type Storage struct {
	// DB holds the secure storage database settings.
	DB DB `envPrefix:"DB_"`

	// Keystore holds the software keystore settings.
	Keystore Keystore `envPrefix:"KEYSTORE_"`
}

// DB holds connection settings for the secure storage.
type DB struct {
	// DSN is the SQLite file used by the secure storage.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Keystore holds the settings of the software keystore.
type Keystore struct {
	// DSN is the SQLite file that persists keystore entries. It may point to
	// the same file as the secure storage.
	// Env: STORAGE_KEYSTORE_DSN
	DSN string `env:"DSN"`

	// AuthWindow is how long a successful biometric prompt authorizes a
	// cipher operation.
	// Env: STORAGE_KEYSTORE_AUTH_WINDOW
	AuthWindow time.Duration `env:"AUTH_WINDOW"`
}

// Adapter holds the key service endpoint settings.
type Adapter struct {
	// Realm is the base URL of the key service (e.g. "https://keys.example.com").
	// Env: ADAPTER_REALM
	Realm string `env:"REALM"`

	// APIVersion is the path segment after /keyservice/ (e.g. "v1").
	// Env: ADAPTER_API_VERSION
	APIVersion string `env:"API_VERSION"`

	// RequestTimeout bounds one key service round trip (e.g. "30s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Defaults applied to fields left empty by every other source.
const (
	DefaultNamespace        = "TIMEncryptedStorage"
	DefaultAPIVersion       = "v1"
	DefaultEncryptionMethod = "aes-gcm"
	DefaultRequestTimeout   = 30 * time.Second
	DefaultAuthWindow       = 30 * time.Second
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Namespace:        DefaultNamespace,
			EncryptionMethod: DefaultEncryptionMethod,
		},
		Storage: Storage{
			Keystore: Keystore{AuthWindow: DefaultAuthWindow},
		},
		Adapter: Adapter{
			APIVersion:     DefaultAPIVersion,
			RequestTimeout: DefaultRequestTimeout,
		},
	}
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources in the following priority order (earlier source wins
// for non-zero fields):
//  1. Environment variables
//  2. Command-line flags parsed from args
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Defaults
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	cfg, _, err := loadStructuredConfig(args)
	return cfg, err
}

// loadStructuredConfig also returns the positional arguments left after flag
// parsing.
func loadStructuredConfig(args []string) (*StructuredConfig, []string, error) {
	b := newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults()

	cfg, err := b.build()
	return cfg, b.rest, err
}
