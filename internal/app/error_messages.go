// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing wording of the timctl host.
//
// All Msg* constants are human-readable messages printed to stderr when a
// command fails. Keeping them in one place keeps the wording consistent
// across commands.
package app

import (
	"errors"

	"github.com/MKhiriev/tim-encrypted-storage/models"
)

const (
	// MsgBadPassword is shown when the key service rejected the secret or
	// long secret.
	MsgBadPassword = "the key service rejected the secret"

	// MsgKeyLocked is shown when the key is locked on the key service.
	MsgKeyLocked = "the key is locked"

	// MsgKeyMissing is shown when the key service does not know the key id.
	MsgKeyMissing = "unknown key id"

	// MsgUnableToCreateKey is shown when the key service failed internally.
	MsgUnableToCreateKey = "the key service failed to process the request"

	// MsgBadInternet is shown on timeouts and other transport failures.
	MsgBadInternet = "the key service could not be reached reliably, try again"

	// MsgNoInternet is shown when the key service host could not be
	// resolved or connected to.
	MsgNoInternet = "no connection to the key service"

	// MsgUnableToDecode is shown when the key service answered with an
	// unusable body.
	MsgUnableToDecode = "unexpected response from the key service"

	// MsgDataNotFound is shown when nothing is stored under the storage key.
	MsgDataNotFound = "no data stored under this key"

	// MsgBiometricRequired is shown when data is protected differently from
	// how it was requested, or the biometric prompt was not completed.
	MsgBiometricRequired = "biometric authentication failed or is required"

	// MsgStorageFailed is shown on local storage failures.
	MsgStorageFailed = "local storage failure"

	// MsgDecryptFailed is shown when stored data cannot be decrypted with
	// the key, usually because the key id does not match the data.
	MsgDecryptFailed = "data could not be decrypted with this key"

	// MsgKeyInvalidated is shown when the biometric-bound key was
	// invalidated by an enrollment change.
	MsgKeyInvalidated = "biometric enrollment changed, enable biometric protection again"

	// MsgInvalidArguments is shown when required identifiers are empty.
	MsgInvalidArguments = "invalid data provided"

	// MsgInternalError covers every other failure.
	MsgInternalError = "internal error"
)

var keyServiceMessages = map[models.KeyServiceErrorKind]string{
	models.BadPassword:           MsgBadPassword,
	models.KeyLocked:             MsgKeyLocked,
	models.KeyMissing:            MsgKeyMissing,
	models.UnableToCreateKey:     MsgUnableToCreateKey,
	models.BadInternet:           MsgBadInternet,
	models.PotentiallyNoInternet: MsgNoInternet,
	models.UnableToDecode:        MsgUnableToDecode,
}

var encryptedStorageMessages = map[models.EncryptedStorageErrorKind]string{
	models.FailedToDecryptData:          MsgDecryptFailed,
	models.UnrecoverablyFailedToDecrypt: MsgDecryptFailed,
	models.PermanentlyInvalidatedKey:    MsgKeyInvalidated,
	models.UnexpectedData:               MsgInvalidArguments,
}

// Message returns the user-facing message for err. Errors outside the
// storage taxonomy are returned as they are.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var ksErr *models.KeyServiceError
	if errors.As(err, &ksErr) {
		if msg, ok := keyServiceMessages[ksErr.Kind]; ok {
			return msg
		}
		return MsgInternalError
	}

	var ssErr *models.SecureStorageError
	if errors.As(err, &ssErr) {
		switch ssErr.Kind {
		case models.FailedToLoadData:
			return MsgDataNotFound
		case models.AuthenticationFailedForData:
			return MsgBiometricRequired
		default:
			return MsgStorageFailed
		}
	}

	var esErr *models.EncryptedStorageError
	if errors.As(err, &esErr) {
		if msg, ok := encryptedStorageMessages[esErr.Kind]; ok {
			return msg
		}
		return MsgInternalError
	}

	return err.Error()
}
