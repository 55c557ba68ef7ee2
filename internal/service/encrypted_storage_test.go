// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/tim-encrypted-storage/internal/adapter"
	"github.com/MKhiriev/tim-encrypted-storage/internal/adapter/keyservicetest"
	"github.com/MKhiriev/tim-encrypted-storage/internal/config"
	"github.com/MKhiriev/tim-encrypted-storage/internal/keystore"
	"github.com/MKhiriev/tim-encrypted-storage/internal/logger"
	"github.com/MKhiriev/tim-encrypted-storage/internal/metrics"
	"github.com/MKhiriev/tim-encrypted-storage/internal/store"
	"github.com/MKhiriev/tim-encrypted-storage/models"
)

const (
	scenarioKeyID  = "168dfa8a-a613-488d-876c-1a79122c8d5a"
	scenarioSecret = "1234"
	storageKey     = "storage-key"
)

var (
	scenarioKey = models.KeyModel{
		KeyID:      scenarioKeyID,
		Key:        "/RT5VXFinR27coWdsieCt3UxoKibplkO+bCVNkDJK9o=",
		LongSecret: "xe6XhucZ0BnH3yLQFR1wrZgPe3l4q/ymnQCCY/iZs3A=",
	}
	scenarioData = []byte("Random-Data")
)

type testEnv struct {
	server   *keyservicetest.Server
	storage  store.SecureStorage
	keystore keystore.Keystore
	metrics  *metrics.Metrics
	services *Services
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	srv := keyservicetest.NewServer("v1")
	t.Cleanup(srv.Close)
	srv.AddKey(scenarioKey, scenarioSecret)

	m := metrics.New()
	ks, err := adapter.NewHTTPKeyService(config.ClientAdapter{
		Realm:          srv.Realm(),
		APIVersion:     "v1",
		RequestTimeout: 5 * time.Second,
	}, logger.Nop(), m)
	require.NoError(t, err)

	secureStorage := store.NewMemorySecureStorage()
	keys := keystore.NewMemoryKeystore(time.Minute)

	services, err := NewServices(secureStorage, ks, keys, config.ClientApp{
		Namespace:        config.DefaultNamespace,
		EncryptionMethod: models.AesGcm,
	}, logger.Nop(), m)
	require.NoError(t, err)

	return &testEnv{server: srv, storage: secureStorage, keystore: keys, metrics: m, services: services}
}

func (e *testEnv) encryptCipher(t *testing.T, keyID string) keystore.Cipher {
	t.Helper()
	c, err := e.services.EncryptedStorage.GetEncryptCipher(context.Background(), keyID)
	require.NoError(t, err)
	c.Authenticate()
	return c
}

func (e *testEnv) decryptCipher(t *testing.T, keyID string) keystore.Cipher {
	t.Helper()
	c, err := e.services.EncryptedStorage.GetDecryptCipher(context.Background(), keyID)
	require.NoError(t, err)
	c.Authenticate()
	return c
}

func TestEncryptedStorage_ScenarioRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	s := env.services.EncryptedStorage
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, scenarioSecret, storageKey, scenarioData, scenarioKeyID))

	raw, err := env.storage.Get(ctx, storageKey)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), string(scenarioData))

	got, err := s.Get(ctx, scenarioSecret, storageKey, scenarioKeyID)
	require.NoError(t, err)
	assert.Equal(t, scenarioData, got)
}

func TestEncryptedStorage_StoreRemoveCycle(t *testing.T) {
	env := newTestEnv(t)
	s := env.services.EncryptedStorage
	ctx := context.Background()

	assert.False(t, s.HasValue(ctx, storageKey))
	require.NoError(t, s.Store(ctx, scenarioSecret, storageKey, scenarioData, scenarioKeyID))
	assert.True(t, s.HasValue(ctx, storageKey))

	require.NoError(t, s.Remove(ctx, storageKey))
	assert.False(t, s.HasValue(ctx, storageKey))

	_, err := s.Get(ctx, scenarioSecret, storageKey, scenarioKeyID)
	assert.ErrorIs(t, err, models.ErrSecureStorageFailed)
	assert.ErrorIs(t, err, models.ErrFailedToLoadData)
}

func TestEncryptedStorage_BiometricGating(t *testing.T) {
	env := newTestEnv(t)
	s := env.services.EncryptedStorage
	ctx := context.Background()

	require.NoError(t, s.EnableBiometric(ctx, scenarioKeyID, scenarioSecret, env.encryptCipher(t, scenarioKeyID)))
	assert.False(t, s.HasBiometricProtectedValue(ctx, storageKey, scenarioKeyID), "long secret alone is not enough")

	require.NoError(t, s.Store(ctx, scenarioSecret, storageKey, scenarioData, scenarioKeyID))
	assert.True(t, s.HasBiometricProtectedValue(ctx, storageKey, scenarioKeyID))

	require.NoError(t, s.Remove(ctx, storageKey))
	assert.False(t, s.HasBiometricProtectedValue(ctx, storageKey, scenarioKeyID))

	require.NoError(t, s.Store(ctx, scenarioSecret, storageKey, scenarioData, scenarioKeyID))
	require.NoError(t, s.RemoveLongSecret(ctx, scenarioKeyID))
	assert.False(t, s.HasBiometricProtectedValue(ctx, storageKey, scenarioKeyID))
	assert.True(t, s.HasValue(ctx, storageKey))
}

func TestEncryptedStorage_LongSecretRevocation(t *testing.T) {
	env := newTestEnv(t)
	s := env.services.EncryptedStorage
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, scenarioSecret, storageKey, scenarioData, scenarioKeyID))
	require.NoError(t, s.EnableBiometric(ctx, scenarioKeyID, scenarioSecret, env.encryptCipher(t, scenarioKeyID)))

	res, err := s.GetViaBiometric(ctx, storageKey, scenarioKeyID, env.decryptCipher(t, scenarioKeyID))
	require.NoError(t, err)
	assert.Equal(t, scenarioData, res.Data)
	assert.Equal(t, scenarioKey.LongSecret, res.LongSecret)

	stale := env.decryptCipher(t, scenarioKeyID)
	require.NoError(t, s.RemoveLongSecret(ctx, scenarioKeyID))

	_, err = s.GetViaBiometric(ctx, storageKey, scenarioKeyID, stale)
	assert.ErrorIs(t, err, models.ErrSecureStorageFailed)
	assert.ErrorIs(t, err, models.ErrFailedToLoadData)

	contains, err := env.keystore.ContainsAlias(ctx, env.services.SecretKeys.Alias(scenarioKeyID))
	require.NoError(t, err)
	assert.False(t, contains, "secret key must be deleted with the long secret")
}

func TestEncryptedStorage_NewKeyStoreAndReload(t *testing.T) {
	env := newTestEnv(t)
	s := env.services.EncryptedStorage
	ctx := context.Background()

	created, err := s.StoreWithNewKey(ctx, "new-secret", storageKey, scenarioData)
	require.NoError(t, err)
	assert.NotEmpty(t, created.KeyID)
	assert.NotEmpty(t, created.LongSecret)

	got, err := s.Get(ctx, "new-secret", storageKey, created.KeyID)
	require.NoError(t, err)
	assert.Equal(t, scenarioData, got)

	got, err = s.GetWithLongSecret(ctx, created.LongSecret, storageKey, created.KeyID)
	require.NoError(t, err)
	assert.Equal(t, scenarioData, got)
}

func TestEncryptedStorage_StoreWithLongSecret(t *testing.T) {
	env := newTestEnv(t)
	s := env.services.EncryptedStorage
	ctx := context.Background()

	require.NoError(t, s.StoreWithLongSecret(ctx, scenarioKey.LongSecret, storageKey, scenarioData, scenarioKeyID))

	got, err := s.Get(ctx, scenarioSecret, storageKey, scenarioKeyID)
	require.NoError(t, err)
	assert.Equal(t, scenarioData, got)
}

func TestEncryptedStorage_StoreViaBiometric(t *testing.T) {
	env := newTestEnv(t)
	s := env.services.EncryptedStorage
	ctx := context.Background()

	require.NoError(t, s.EnableBiometricWithLongSecret(ctx, scenarioKeyID, scenarioKey.LongSecret, env.encryptCipher(t, scenarioKeyID)))
	require.NoError(t, s.StoreViaBiometric(ctx, storageKey, scenarioData, scenarioKeyID, env.decryptCipher(t, scenarioKeyID)))

	got, err := s.Get(ctx, scenarioSecret, storageKey, scenarioKeyID)
	require.NoError(t, err)
	assert.Equal(t, scenarioData, got)
}

func TestEncryptedStorage_StoreViaBiometricWithNewKey(t *testing.T) {
	env := newTestEnv(t)
	s := env.services.EncryptedStorage
	ctx := context.Background()
	const deviceKeyID = "device"

	created, err := s.StoreViaBiometricWithNewKey(ctx, storageKey, scenarioData, "new-secret", env.encryptCipher(t, deviceKeyID))
	require.NoError(t, err)
	assert.True(t, s.HasBiometricProtectedValue(ctx, storageKey, created.KeyID))

	// the envelope names the device key, so the plain lookup finds it
	res, err := s.GetViaBiometric(ctx, storageKey, created.KeyID, env.decryptCipher(t, created.KeyID))
	require.NoError(t, err)
	assert.Equal(t, scenarioData, res.Data)
	assert.Equal(t, created.LongSecret, res.LongSecret)

	dec, err := s.GetDecryptCipherFor(ctx, created.KeyID, deviceKeyID)
	require.NoError(t, err)
	dec.Authenticate()
	_, err = s.GetViaBiometric(ctx, storageKey, created.KeyID, dec)
	require.NoError(t, err)
}

func TestEncryptedStorage_RemoveLongSecretDeletesWrappingKey(t *testing.T) {
	env := newTestEnv(t)
	s := env.services.EncryptedStorage
	ctx := context.Background()
	const deviceKeyID = "device"
	deviceAlias := env.services.SecretKeys.Alias(deviceKeyID)

	created, err := s.StoreViaBiometricWithNewKey(ctx, storageKey, scenarioData, "new-secret", env.encryptCipher(t, deviceKeyID))
	require.NoError(t, err)

	contains, err := env.keystore.ContainsAlias(ctx, deviceAlias)
	require.NoError(t, err)
	require.True(t, contains)

	require.NoError(t, s.RemoveLongSecret(ctx, created.KeyID))

	contains, err = env.keystore.ContainsAlias(ctx, deviceAlias)
	require.NoError(t, err)
	assert.False(t, contains)
	assert.False(t, s.HasBiometricProtectedValue(ctx, storageKey, created.KeyID))

	// the secret path is untouched
	got, err := s.Get(ctx, "new-secret", storageKey, created.KeyID)
	require.NoError(t, err)
	assert.Equal(t, scenarioData, got)
}

func TestEncryptedStorage_StoreViaBiometricWithNewKey_NoRollback(t *testing.T) {
	env := newTestEnv(t)
	s := env.services.EncryptedStorage
	ctx := context.Background()

	unauthenticated, err := s.GetEncryptCipher(ctx, "device")
	require.NoError(t, err)

	created, err := s.StoreViaBiometricWithNewKey(ctx, storageKey, scenarioData, "new-secret", unauthenticated)
	assert.ErrorIs(t, err, models.ErrUnrecoverablyFailedToEncrypt)
	assert.False(t, s.HasValue(ctx, storageKey))
	require.NotEmpty(t, created.KeyID)
	require.NotEmpty(t, created.LongSecret)

	reqs := env.server.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, keyservicetest.EndpointCreateKey, reqs[0].Endpoint)

	// the returned key is usable through the secret path
	require.NoError(t, s.Store(ctx, "new-secret", storageKey, scenarioData, created.KeyID))
	got, err := s.GetWithLongSecret(ctx, created.LongSecret, storageKey, created.KeyID)
	require.NoError(t, err)
	assert.Equal(t, scenarioData, got)
}

func TestEncryptedStorage_UnauthenticatedDecryptCipher(t *testing.T) {
	env := newTestEnv(t)
	s := env.services.EncryptedStorage
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, scenarioSecret, storageKey, scenarioData, scenarioKeyID))
	require.NoError(t, s.EnableBiometric(ctx, scenarioKeyID, scenarioSecret, env.encryptCipher(t, scenarioKeyID)))

	dec, err := s.GetDecryptCipher(ctx, scenarioKeyID)
	require.NoError(t, err)

	_, err = s.GetViaBiometric(ctx, storageKey, scenarioKeyID, dec)
	assert.ErrorIs(t, err, models.ErrUnrecoverablyFailedToDecrypt)
}

func TestEncryptedStorage_EnrollmentChangeInvalidatesBiometric(t *testing.T) {
	env := newTestEnv(t)
	s := env.services.EncryptedStorage
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, scenarioSecret, storageKey, scenarioData, scenarioKeyID))
	require.NoError(t, s.EnableBiometric(ctx, scenarioKeyID, scenarioSecret, env.encryptCipher(t, scenarioKeyID)))
	require.NoError(t, env.keystore.EnrollmentChanged(ctx))

	_, err := s.GetDecryptCipher(ctx, scenarioKeyID)
	assert.ErrorIs(t, err, models.ErrPermanentlyInvalidatedKey)

	// the secret path keeps working, and biometrics can be enabled again
	got, err := s.Get(ctx, scenarioSecret, storageKey, scenarioKeyID)
	require.NoError(t, err)
	assert.Equal(t, scenarioData, got)

	require.NoError(t, s.EnableBiometric(ctx, scenarioKeyID, scenarioSecret, env.encryptCipher(t, scenarioKeyID)))
	res, err := s.GetViaBiometric(ctx, storageKey, scenarioKeyID, env.decryptCipher(t, scenarioKeyID))
	require.NoError(t, err)
	assert.Equal(t, scenarioData, res.Data)
}

func TestEncryptedStorage_GetDecryptCipherWithoutEnvelope(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.services.EncryptedStorage.GetDecryptCipher(context.Background(), scenarioKeyID)
	assert.ErrorIs(t, err, models.ErrSecureStorageFailed)
}

func TestEncryptedStorage_KeyServiceErrorsSurfaceAsKeyServiceFailed(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{status: http.StatusNoContent, want: models.ErrKeyLocked},
		{status: http.StatusForbidden, want: models.ErrKeyLocked},
		{status: http.StatusUnauthorized, want: models.ErrBadPassword},
		{status: http.StatusInternalServerError, want: models.ErrUnableToCreateKey},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			env := newTestEnv(t)
			env.server.FailNext(keyservicetest.EndpointCreateKey, tt.status)

			_, err := env.services.EncryptedStorage.StoreWithNewKey(context.Background(), "s", storageKey, scenarioData)

			var esErr *models.EncryptedStorageError
			require.ErrorAs(t, err, &esErr)
			assert.Equal(t, models.KeyServiceFailed, esErr.Kind)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEncryptedStorage_WrongSecret(t *testing.T) {
	env := newTestEnv(t)
	s := env.services.EncryptedStorage
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, scenarioSecret, storageKey, scenarioData, scenarioKeyID))

	_, err := s.Get(ctx, "0000", storageKey, scenarioKeyID)
	assert.ErrorIs(t, err, models.ErrKeyServiceFailed)
	assert.ErrorIs(t, err, models.ErrBadPassword)
}

func TestEncryptedStorage_CiphertextUnderOtherKeyFailsToDecrypt(t *testing.T) {
	env := newTestEnv(t)
	s := env.services.EncryptedStorage
	ctx := context.Background()

	created, err := s.StoreWithNewKey(ctx, "other", storageKey, scenarioData)
	require.NoError(t, err)
	require.NotEqual(t, scenarioKeyID, created.KeyID)

	_, err = s.Get(ctx, scenarioSecret, storageKey, scenarioKeyID)
	assert.ErrorIs(t, err, models.ErrFailedToDecryptData)
}

func TestEncryptedStorage_RecordsMetrics(t *testing.T) {
	env := newTestEnv(t)
	s := env.services.EncryptedStorage
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, scenarioSecret, storageKey, scenarioData, scenarioKeyID))
	_, err := s.Get(ctx, "0000", storageKey, scenarioKeyID)
	require.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, env.metrics.WriteText(&buf))
	out := buf.String()
	assert.Contains(t, out, `component="encrypted_storage",operation="store",outcome="success"} 1`)
	assert.Contains(t, out, `component="encrypted_storage",operation="get",outcome="BadPassword"} 1`)
	assert.Contains(t, out, `component="key_service",operation="get_key_via_secret",outcome="success"} 1`)
}
