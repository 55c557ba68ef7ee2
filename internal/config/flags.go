package config

import (
	"flag"
	"fmt"
	"time"
)

// ParseFlags parses configuration flags from args and returns the remaining
// positional arguments.
//
// Flags:
//
//	-r key service realm (base URL)
//	-api-version key service API version
//	-request-timeout key service request timeout (e.g., "30s", "1m")
//	-d secure storage SQLite DSN
//	-k keystore SQLite DSN
//	-auth-window biometric authorization window (e.g., "30s")
//	-n storage namespace
//	-m encryption method (aes-gcm, chacha20-poly1305)
//	-metrics print operation metrics after the command
//	-c/-config json file path with configs
func ParseFlags(args []string) (*StructuredConfig, []string, error) {
	var realm, apiVersion string
	var requestTimeout, authWindow time.Duration
	var databaseDSN, keystoreDSN string
	var namespace, encryptionMethod string
	var metricsEnabled bool
	var jsonConfigPath string

	fs := flag.NewFlagSet("timctl", flag.ContinueOnError)
	fs.StringVar(&realm, "r", "", "Key service realm (base URL)")
	fs.StringVar(&apiVersion, "api-version", "", "Key service API version")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&databaseDSN, "d", "", "Secure storage DSN")
	fs.StringVar(&keystoreDSN, "k", "", "Keystore DSN")
	fs.DurationVar(&authWindow, "auth-window", 0, "Biometric authorization window (e.g., 30s)")
	fs.StringVar(&namespace, "n", "", "Storage namespace")
	fs.StringVar(&encryptionMethod, "m", "", "Encryption method")
	fs.BoolVar(&metricsEnabled, "metrics", false, "Print operation metrics")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			Namespace:        namespace,
			EncryptionMethod: encryptionMethod,
			MetricsEnabled:   metricsEnabled,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Keystore: Keystore{
				DSN:        keystoreDSN,
				AuthWindow: authWindow,
			},
		},
		Adapter: Adapter{
			Realm:          realm,
			APIVersion:     apiVersion,
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}, fs.Args(), nil
}
