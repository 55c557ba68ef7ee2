package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		Namespace        string `json:"namespace"`
		EncryptionMethod string `json:"encryption_method"`
		MetricsEnabled   bool   `json:"metrics_enabled"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Keystore struct {
			DSN        string   `json:"dsn"`
			AuthWindow Duration `json:"auth_window"`
		} `json:"keystore,omitempty"`
	} `json:"storage,omitempty"`

	Adapter struct {
		Realm          string   `json:"realm"`
		APIVersion     string   `json:"api_version"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Namespace:        jsonCfg.App.Namespace,
			EncryptionMethod: jsonCfg.App.EncryptionMethod,
			MetricsEnabled:   jsonCfg.App.MetricsEnabled,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Keystore: Keystore{
				DSN:        jsonCfg.Storage.Keystore.DSN,
				AuthWindow: time.Duration(jsonCfg.Storage.Keystore.AuthWindow),
			},
		},
		Adapter: Adapter{
			Realm:          jsonCfg.Adapter.Realm,
			APIVersion:     jsonCfg.Adapter.APIVersion,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
