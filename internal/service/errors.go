package service

import "errors"

var (
	ErrEmptyStorageKey = errors.New("storage key is empty")
	ErrEmptyKeyID      = errors.New("key id is empty")
	// ErrReservedStorageKey is returned for storage keys inside the
	// "<namespace>.longSecret." slot space used for biometric envelopes.
	ErrReservedStorageKey = errors.New("storage key is reserved for biometric slots")
	ErrNilCollaborator = errors.New("encrypted storage collaborator is nil")
)
