package crypto

import "github.com/MKhiriev/tim-encrypted-storage/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/cipher_engine_mock.go -package=mock

// CipherEngine отвечает за симметричное AEAD-шифрование полезной нагрузки.
// Он не знает ничего о сети, хранилище или биометрии.
//
// Формат шифртекста одинаков для всех методов:
//
//	blob = nonce(12) ‖ ciphertext ‖ tag(16)
type CipherEngine interface {
	// Encrypt seals plaintext under key with a fresh random nonce.
	Encrypt(method models.EncryptionMethod, key, plaintext []byte) ([]byte, error)

	// Decrypt splits the nonce off blob and opens the rest. Any tag mismatch,
	// wrong key or truncated blob fails with FailedToDecryptData.
	Decrypt(method models.EncryptionMethod, key, blob []byte) ([]byte, error)

	// EncryptWithKeyModel decodes the base64 key of model and encrypts data
	// with it. The decoded key is wiped before returning.
	EncryptWithKeyModel(model models.KeyModel, method models.EncryptionMethod, data []byte) ([]byte, error)

	// DecryptWithKeyModel is the inverse of EncryptWithKeyModel.
	DecryptWithKeyModel(model models.KeyModel, method models.EncryptionMethod, blob []byte) ([]byte, error)
}
