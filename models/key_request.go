package models

// CreateKeyRequest is the body of POST keyservice/{version}/createkey.
type CreateKeyRequest struct {
	Secret string `json:"secret"`
}

// KeyViaSecretRequest is the body of POST keyservice/{version}/key when the
// key is unlocked with the user secret.
type KeyViaSecretRequest struct {
	KeyID  string `json:"keyid"`
	Secret string `json:"secret"`
}

// KeyViaLongSecretRequest is the body of POST keyservice/{version}/key when
// the key is unlocked with the long secret.
type KeyViaLongSecretRequest struct {
	KeyID      string `json:"keyid"`
	LongSecret string `json:"longsecret"`
}
