package app

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/tim-encrypted-storage/models"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{
			name: "bad password through encrypted storage error",
			err:  models.WrapKeyServiceError(models.NewKeyServiceError(models.BadPassword, nil)),
			want: MsgBadPassword,
		},
		{
			name: "no internet",
			err:  fmt.Errorf("store: %w", models.WrapKeyServiceError(models.NewKeyServiceError(models.PotentiallyNoInternet, errors.New("dial")))),
			want: MsgNoInternet,
		},
		{
			name: "unknown key service failure",
			err:  models.WrapKeyServiceError(errors.New("boom")),
			want: MsgInternalError,
		},
		{
			name: "missing data",
			err:  models.WrapSecureStorageError(models.NewSecureStorageError(models.FailedToLoadData, nil)),
			want: MsgDataNotFound,
		},
		{
			name: "protection mismatch",
			err:  models.WrapSecureStorageError(models.NewSecureStorageError(models.AuthenticationFailedForData, nil)),
			want: MsgBiometricRequired,
		},
		{
			name: "store failure",
			err:  models.WrapSecureStorageError(models.NewSecureStorageError(models.FailedToStoreData, nil)),
			want: MsgStorageFailed,
		},
		{
			name: "decrypt failure",
			err:  models.NewEncryptedStorageError(models.FailedToDecryptData, nil),
			want: MsgDecryptFailed,
		},
		{
			name: "invalidated key",
			err:  models.NewEncryptedStorageError(models.PermanentlyInvalidatedKey, nil),
			want: MsgKeyInvalidated,
		},
		{
			name: "unmapped encrypted storage kind",
			err:  models.NewEncryptedStorageError(models.FailedToEncodeData, nil),
			want: MsgInternalError,
		},
		{name: "foreign error", err: errors.New("missing required argument: -key"), want: "missing required argument: -key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err))
		})
	}
}
