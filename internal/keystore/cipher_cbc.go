package keystore

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"
)

// cbcCipher implements AES/CBC/PKCS7Padding.
type cbcCipher struct {
	mu sync.Mutex

	mode CipherMode
	key  *SecretKey
	iv   []byte

	authorized   bool
	authorizedAt time.Time
	window       time.Duration
	now          func() time.Time
}

func (c *cbcCipher) Init(mode CipherMode, key *SecretKey, iv []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if key == nil || key.material == nil {
		return ErrKeyNotFound
	}
	if key.invalidated {
		return fmt.Errorf("%w: %s", ErrKeyPermanentlyInvalidated, key.alias)
	}

	switch mode {
	case EncryptMode:
		if iv == nil {
			iv = make([]byte, aes.BlockSize)
			if _, err := io.ReadFull(rand.Reader, iv); err != nil {
				return fmt.Errorf("generate iv: %w", err)
			}
		}
	case DecryptMode:
	default:
		return fmt.Errorf("unknown cipher mode %d", mode)
	}
	if len(iv) != aes.BlockSize {
		return ErrInvalidIV
	}

	c.mode = mode
	c.key = key
	c.iv = bytes.Clone(iv)
	c.authorized = false
	return nil
}

func (c *cbcCipher) IV() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	return bytes.Clone(c.iv)
}

func (c *cbcCipher) Alias() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.key == nil {
		return ""
	}
	return c.key.alias
}

func (c *cbcCipher) Authenticate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.authorized = true
	c.authorizedAt = c.now()
}

func (c *cbcCipher) DoFinal(data []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.key == nil {
		return nil, ErrCipherNotInitialized
	}

	if c.key.spec.UserAuthenticationRequired {
		if !c.authorized || c.now().Sub(c.authorizedAt) > c.window {
			return nil, fmt.Errorf("%w: %w", ErrIllegalBlockSize, ErrKeyUserNotAuthenticated)
		}
		// one prompt authorizes one operation
		c.authorized = false
	}

	buf, err := c.key.material.Open()
	if err != nil {
		return nil, fmt.Errorf("open key material: %w", err)
	}
	defer buf.Destroy()

	block, err := aes.NewCipher(buf.Bytes())
	if err != nil {
		return nil, err
	}

	if c.mode == EncryptMode {
		padded := pkcs7Pad(data, aes.BlockSize)
		out := make([]byte, len(padded))
		cipher.NewCBCEncrypter(block, c.iv).CryptBlocks(out, padded)
		return out, nil
	}

	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return nil, ErrIllegalBlockSize
	}
	out := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, c.iv).CryptBlocks(out, data)
	return pkcs7Unpad(out, aes.BlockSize)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(bytes.Clone(data), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, ErrBadPadding
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrBadPadding
		}
	}
	return data[:len(data)-n], nil
}
