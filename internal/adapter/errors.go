package adapter

import "errors"

var (
	ErrEmptyRealm        = errors.New("empty realm")
	ErrInvalidRealm      = errors.New("realm must include scheme and host")
	ErrEmptyAPIVersion   = errors.New("empty api version")
	ErrIncompleteKey     = errors.New("key service response lacks keyid, key or longsecret")
	ErrUnexpectedStatus  = errors.New("unexpected key service status")
	ErrRequestCancelled  = errors.New("key service request cancelled")
	ErrTransportFailure  = errors.New("key service transport failure")
	ErrConnectionFailure = errors.New("key service unreachable")
)
