// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validate checks the merged [StructuredConfig]. Only values that are
// malformed regardless of the runtime are rejected here; completeness is
// checked by [ClientConfig.validate].
func (cfg *StructuredConfig) validate() error {
	if cfg.Adapter.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout", ErrInvalidAdapterConfigs)
	}
	if cfg.Storage.Keystore.AuthWindow < 0 {
		return fmt.Errorf("%w: negative auth window", ErrInvalidStorageConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Storage.Keystore.DSN == "" || strings.Contains(cfg.Storage.Keystore.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.Realm == "" || cfg.Adapter.RequestTimeout == 0 || cfg.Adapter.APIVersion == "" {
		return ErrInvalidAdapterConfigs
	}

	realm, err := url.Parse(cfg.Adapter.Realm)
	if err != nil || (realm.Scheme != "http" && realm.Scheme != "https") || realm.Host == "" {
		return fmt.Errorf("%w: realm must be an absolute http(s) URL", ErrInvalidAdapterConfigs)
	}

	if cfg.App.Namespace == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
