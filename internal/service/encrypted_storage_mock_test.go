package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/tim-encrypted-storage/internal/biometric"
	"github.com/MKhiriev/tim-encrypted-storage/internal/config"
	"github.com/MKhiriev/tim-encrypted-storage/internal/keystore"
	"github.com/MKhiriev/tim-encrypted-storage/internal/logger"
	"github.com/MKhiriev/tim-encrypted-storage/internal/mock"
	"github.com/MKhiriev/tim-encrypted-storage/models"
)

type mocks struct {
	storage    *mock.MockSecureStorage
	keyService *mock.MockKeyService
	engine     *mock.MockCipherEngine
	keystore   keystore.Keystore
}

func newMockedStorage(t *testing.T) (EncryptedStorage, mocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := mocks{
		storage:    mock.NewMockSecureStorage(ctrl),
		keyService: mock.NewMockKeyService(ctrl),
		engine:     mock.NewMockCipherEngine(ctrl),
		keystore:   keystore.NewMemoryKeystore(0),
	}

	helper := biometric.NewHelper(keystore.NewSecretKeyManager(m.keystore, config.DefaultNamespace, logger.Nop()), logger.Nop())
	s, err := NewEncryptedStorage(m.storage, m.keyService, m.engine, helper, config.ClientApp{}, logger.Nop(), nil)
	require.NoError(t, err)
	return s, m
}

func TestNewEncryptedStorage_NilCollaborator(t *testing.T) {
	_, err := NewEncryptedStorage(nil, nil, nil, nil, config.ClientApp{}, nil, nil)
	assert.ErrorIs(t, err, ErrNilCollaborator)
}

func TestStore_LocalStepIgnoresCancellation(t *testing.T) {
	s, m := newMockedStorage(t)
	ctx, cancel := context.WithCancel(context.Background())

	gomock.InOrder(
		m.keyService.EXPECT().GetKeyViaSecret(gomock.Any(), scenarioSecret, scenarioKeyID).
			DoAndReturn(func(context.Context, string, string) (models.KeyModel, error) {
				cancel()
				return scenarioKey, nil
			}),
		m.engine.EXPECT().EncryptWithKeyModel(scenarioKey, models.AesGcm, scenarioData).Return([]byte("blob"), nil),
		m.storage.EXPECT().Store(gomock.Any(), []byte("blob"), storageKey).
			DoAndReturn(func(ctx context.Context, _ []byte, _ string) error {
				assert.NoError(t, ctx.Err())
				return nil
			}),
	)

	require.NoError(t, s.Store(ctx, scenarioSecret, storageKey, scenarioData, scenarioKeyID))
}

func TestStore_Failures(t *testing.T) {
	runtimeErr := errors.New("socket closed")

	tests := []struct {
		name  string
		setup func(m mocks)
		kind  models.EncryptedStorageErrorKind
		is    []error
	}{
		{
			name: "key locked",
			setup: func(m mocks) {
				m.keyService.EXPECT().GetKeyViaSecret(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(models.KeyModel{}, models.NewKeyServiceError(models.KeyLocked, nil))
			},
			kind: models.KeyServiceFailed,
			is:   []error{models.ErrKeyLocked},
		},
		{
			name: "untyped key service failure",
			setup: func(m mocks) {
				m.keyService.EXPECT().GetKeyViaSecret(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(models.KeyModel{}, runtimeErr)
			},
			kind: models.KeyServiceFailed,
			is:   []error{models.ErrKeyServiceUnknown, runtimeErr},
		},
		{
			name: "invalid method",
			setup: func(m mocks) {
				m.keyService.EXPECT().GetKeyViaSecret(gomock.Any(), gomock.Any(), gomock.Any()).Return(scenarioKey, nil)
				m.engine.EXPECT().EncryptWithKeyModel(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, models.NewEncryptedStorageError(models.InvalidEncryptionMethod, nil))
			},
			kind: models.InvalidEncryptionMethod,
		},
		{
			name: "untyped engine failure",
			setup: func(m mocks) {
				m.keyService.EXPECT().GetKeyViaSecret(gomock.Any(), gomock.Any(), gomock.Any()).Return(scenarioKey, nil)
				m.engine.EXPECT().EncryptWithKeyModel(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, runtimeErr)
			},
			kind: models.FailedToEncryptData,
			is:   []error{runtimeErr},
		},
		{
			name: "storage write",
			setup: func(m mocks) {
				m.keyService.EXPECT().GetKeyViaSecret(gomock.Any(), gomock.Any(), gomock.Any()).Return(scenarioKey, nil)
				m.engine.EXPECT().EncryptWithKeyModel(gomock.Any(), gomock.Any(), gomock.Any()).Return([]byte("blob"), nil)
				m.storage.EXPECT().Store(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(models.NewSecureStorageError(models.FailedToStoreData, runtimeErr))
			},
			kind: models.SecureStorageFailed,
			is:   []error{models.ErrFailedToStoreData, runtimeErr},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newMockedStorage(t)
			tt.setup(m)

			err := s.Store(context.Background(), scenarioSecret, storageKey, scenarioData, scenarioKeyID)

			var esErr *models.EncryptedStorageError
			require.ErrorAs(t, err, &esErr)
			assert.Equal(t, tt.kind, esErr.Kind)
			for _, target := range tt.is {
				assert.ErrorIs(t, err, target)
			}
		})
	}
}

func TestGet_LoadFailureSkipsDecrypt(t *testing.T) {
	s, m := newMockedStorage(t)

	m.keyService.EXPECT().GetKeyViaLongSecret(gomock.Any(), scenarioKey.LongSecret, scenarioKeyID).Return(scenarioKey, nil)
	m.storage.EXPECT().Get(gomock.Any(), storageKey).Return(nil, models.NewSecureStorageError(models.FailedToLoadData, nil))

	_, err := s.GetWithLongSecret(context.Background(), scenarioKey.LongSecret, storageKey, scenarioKeyID)
	assert.ErrorIs(t, err, models.ErrSecureStorageFailed)
	assert.ErrorIs(t, err, models.ErrFailedToLoadData)
}

func TestGet_KeyServiceCancelled(t *testing.T) {
	s, m := newMockedStorage(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m.keyService.EXPECT().GetKeyViaSecret(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _, _ string) (models.KeyModel, error) {
			return models.KeyModel{}, models.NewKeyServiceError(models.UnknownKeyServiceFailure, ctx.Err())
		})

	_, err := s.Get(ctx, scenarioSecret, storageKey, scenarioKeyID)
	assert.ErrorIs(t, err, models.ErrKeyServiceFailed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidation(t *testing.T) {
	s, _ := newMockedStorage(t)
	ctx := context.Background()

	err := s.Store(ctx, scenarioSecret, "", scenarioData, scenarioKeyID)
	assert.ErrorIs(t, err, models.ErrUnexpectedData)
	assert.ErrorIs(t, err, ErrEmptyStorageKey)

	_, err = s.Get(ctx, scenarioSecret, storageKey, "")
	assert.ErrorIs(t, err, ErrEmptyKeyID)

	_, err = s.StoreWithNewKey(ctx, scenarioSecret, "", scenarioData)
	assert.ErrorIs(t, err, ErrEmptyStorageKey)

	_, err = s.GetEncryptCipher(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyKeyID)
}

func TestHasBiometricProtectedValue_UsesNamespacedSlot(t *testing.T) {
	s, m := newMockedStorage(t)
	ctx := context.Background()

	m.storage.EXPECT().HasBiometricProtectedValue(gomock.Any(), "TIMEncryptedStorage.longSecret."+scenarioKeyID).Return(true)
	m.storage.EXPECT().HasValue(gomock.Any(), storageKey).Return(false)

	assert.False(t, s.HasBiometricProtectedValue(ctx, storageKey, scenarioKeyID))
}

func TestEnableBiometric_StoresEnvelopeInSlot(t *testing.T) {
	s, m := newMockedStorage(t)
	ctx := context.Background()

	enc, err := s.GetEncryptCipher(ctx, scenarioKeyID)
	require.NoError(t, err)
	enc.Authenticate()

	m.keyService.EXPECT().GetKeyViaSecret(gomock.Any(), scenarioSecret, scenarioKeyID).Return(scenarioKey, nil)
	m.storage.EXPECT().StoreBiometricProtected(gomock.Any(), gomock.Any(), "TIMEncryptedStorage.longSecret."+scenarioKeyID).
		DoAndReturn(func(_ context.Context, raw []byte, _ string) error {
			env, err := biometric.DecodeEnvelope(raw)
			require.NoError(t, err)
			assert.Equal(t, enc.IV(), []byte(env.InitializationVector))
			assert.Equal(t, scenarioKeyID, env.SecretKeyID)
			assert.NotContains(t, string(raw), scenarioKey.LongSecret)
			return nil
		})

	require.NoError(t, s.EnableBiometric(ctx, scenarioKeyID, scenarioSecret, enc))
}

func TestEnableBiometric_NilCipher(t *testing.T) {
	s, _ := newMockedStorage(t)

	err := s.EnableBiometricWithLongSecret(context.Background(), scenarioKeyID, scenarioKey.LongSecret, nil)
	assert.ErrorIs(t, err, models.ErrInvalidCipher)
}

func TestGetViaBiometric_CorruptEnvelope(t *testing.T) {
	s, m := newMockedStorage(t)

	m.storage.EXPECT().GetBiometricProtected(gomock.Any(), gomock.Any()).Return([]byte("{not json"), nil)

	_, err := s.GetViaBiometric(context.Background(), storageKey, scenarioKeyID, nil)
	assert.ErrorIs(t, err, models.ErrFailedToDecodeData)
}

func TestRemoveLongSecret_StorageFailureStillDeletesKey(t *testing.T) {
	s, m := newMockedStorage(t)
	ctx := context.Background()

	_, err := s.GetEncryptCipher(ctx, scenarioKeyID)
	require.NoError(t, err)

	m.storage.EXPECT().GetBiometricProtected(gomock.Any(), "TIMEncryptedStorage.longSecret."+scenarioKeyID).
		Return(nil, models.NewSecureStorageError(models.FailedToLoadData, nil))
	m.storage.EXPECT().Remove(gomock.Any(), "TIMEncryptedStorage.longSecret."+scenarioKeyID).
		Return(models.NewSecureStorageError(models.FailedToStoreData, nil))

	err = s.RemoveLongSecret(ctx, scenarioKeyID)
	assert.ErrorIs(t, err, models.ErrSecureStorageFailed)

	contains, err := m.keystore.ContainsAlias(ctx, "TIMEncryptedStorage.secretKey."+scenarioKeyID)
	require.NoError(t, err)
	assert.False(t, contains)
}

func TestRemoveLongSecret_ResolvesSecretKeyFromEnvelope(t *testing.T) {
	s, m := newMockedStorage(t)
	ctx := context.Background()

	_, err := s.GetEncryptCipher(ctx, "device")
	require.NoError(t, err)
	_, err = s.GetEncryptCipher(ctx, scenarioKeyID)
	require.NoError(t, err)

	raw, err := biometric.EncodeEnvelope([]byte{1}, []byte{2}, "device")
	require.NoError(t, err)

	slot := "TIMEncryptedStorage.longSecret." + scenarioKeyID
	m.storage.EXPECT().GetBiometricProtected(gomock.Any(), slot).Return(raw, nil)
	m.storage.EXPECT().Remove(gomock.Any(), slot).Return(nil)

	require.NoError(t, s.RemoveLongSecret(ctx, scenarioKeyID))

	contains, err := m.keystore.ContainsAlias(ctx, "TIMEncryptedStorage.secretKey.device")
	require.NoError(t, err)
	assert.False(t, contains)

	// a key under the slot's own id is not what wrapped the envelope
	contains, err = m.keystore.ContainsAlias(ctx, "TIMEncryptedStorage.secretKey."+scenarioKeyID)
	require.NoError(t, err)
	assert.True(t, contains)
}

func TestStoreWithNewKey_LocalFailureReturnsCreatedKey(t *testing.T) {
	s, m := newMockedStorage(t)
	ctx := context.Background()

	m.keyService.EXPECT().CreateKey(gomock.Any(), scenarioSecret).Return(scenarioKey, nil)
	m.engine.EXPECT().EncryptWithKeyModel(scenarioKey, models.AesGcm, scenarioData).Return([]byte("blob"), nil)
	m.storage.EXPECT().Store(gomock.Any(), []byte("blob"), storageKey).
		Return(models.NewSecureStorageError(models.FailedToStoreData, nil))

	created, err := s.StoreWithNewKey(ctx, scenarioSecret, storageKey, scenarioData)
	assert.ErrorIs(t, err, models.ErrSecureStorageFailed)
	assert.Equal(t, models.KeyCreationResult{KeyID: scenarioKeyID, LongSecret: scenarioKey.LongSecret}, created)
}

func TestStorageKeysInBiometricSlotSpaceAreRejected(t *testing.T) {
	s, _ := newMockedStorage(t)
	ctx := context.Background()
	reserved := "TIMEncryptedStorage.longSecret." + scenarioKeyID

	err := s.Store(ctx, scenarioSecret, reserved, scenarioData, scenarioKeyID)
	assert.ErrorIs(t, err, ErrReservedStorageKey)
	assert.ErrorIs(t, err, models.ErrUnexpectedData)

	_, err = s.StoreWithNewKey(ctx, scenarioSecret, reserved, scenarioData)
	assert.ErrorIs(t, err, ErrReservedStorageKey)

	_, err = s.Get(ctx, scenarioSecret, reserved, scenarioKeyID)
	assert.ErrorIs(t, err, ErrReservedStorageKey)

	assert.ErrorIs(t, s.Remove(ctx, reserved), ErrReservedStorageKey)
}
