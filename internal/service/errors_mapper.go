package service

import (
	"errors"

	"github.com/MKhiriev/tim-encrypted-storage/models"
)

// asStorageError returns err unchanged when it already is an
// *models.EncryptedStorageError, and wraps it with fallback otherwise, so the
// caller always sees exactly one encrypted storage error.
func asStorageError(err error, fallback models.EncryptedStorageErrorKind) error {
	if err == nil {
		return nil
	}

	var esErr *models.EncryptedStorageError
	if errors.As(err, &esErr) {
		return esErr
	}
	return models.NewEncryptedStorageError(fallback, err)
}

func keyServiceFailed(err error) error {
	if err == nil {
		return nil
	}
	return models.WrapKeyServiceError(err)
}

func secureStorageFailed(err error) error {
	if err == nil {
		return nil
	}
	return models.WrapSecureStorageError(err)
}
