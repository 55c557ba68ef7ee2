// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// StorageKey identifies one logical stored payload in the secure storage.
// It is chosen by the caller and is unrelated to the key service's keyid.
type StorageKey = string

// KeyModel is the key material issued by the key service.
// A given KeyID always maps to the same Key for the lifetime of the key on
// the service. LongSecret can be used instead of the user secret to fetch the
// same KeyModel again.
type KeyModel struct {
	// KeyID is the service-side identifier of the key.
	KeyID string `json:"keyid"`

	// Key is the raw symmetric key, base64 encoded.
	Key string `json:"key"`

	// LongSecret is the recovery secret accepted by the service in place of
	// the user secret.
	LongSecret string `json:"longsecret"`
}

// KeyCreationResult is returned by operations that create a brand-new key.
// Callers keep KeyID to read the stored data back and may use LongSecret to
// enable biometric protection later.
type KeyCreationResult struct {
	KeyID      string
	LongSecret string
}

// BiometricLoadResult is the outcome of a biometric-protected load: the
// decrypted payload together with the long secret that unlocked it.
type BiometricLoadResult struct {
	Data       []byte
	LongSecret string
}
