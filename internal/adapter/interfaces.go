// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer for the remote key service.
//
// The primary abstraction is [KeyService], which decouples the encrypted
// storage from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPKeyService]) built on resty.
//
// Every failure returned by a [KeyService] is a *models.KeyServiceError, so
// callers can use [errors.Is] with the models sentinels (for example
// models.ErrKeyLocked for HTTP 204/403).
package adapter

import (
	"context"

	"github.com/MKhiriev/tim-encrypted-storage/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/key_service_mock.go -package=mock

// KeyService issues and re-derives symmetric keys. Each call is a single
// request with no retries; cancelling ctx aborts it.
type KeyService interface {
	// CreateKey creates a brand-new key bound to secret and returns the
	// complete key model, including the long secret.
	CreateKey(ctx context.Context, secret string) (models.KeyModel, error)

	// GetKeyViaSecret fetches the key identified by keyID, unlocking it with
	// the user secret.
	GetKeyViaSecret(ctx context.Context, secret, keyID string) (models.KeyModel, error)

	// GetKeyViaLongSecret fetches the key identified by keyID, unlocking it
	// with the long secret issued at creation.
	GetKeyViaLongSecret(ctx context.Context, longSecret, keyID string) (models.KeyModel, error)
}
