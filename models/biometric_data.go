package models

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
)

// BiometricEncryptedData is the envelope persisted in the biometric slot: the
// long secret encrypted by the platform cipher, plus the IV the cipher chose.
// SecretKeyID names the secret key that wrapped the long secret; envelopes
// without it were wrapped under the slot's own key id.
type BiometricEncryptedData struct {
	EncryptedData        ByteArray `json:"encryptedData"`
	InitializationVector ByteArray `json:"initializationVector"`
	SecretKeyID          string    `json:"secretKeyId,omitempty"`
}

// ByteArray is a byte slice encoded in JSON as an array of signed 8-bit
// integers, e.g. [-1, 12, 127].
//
// Decoding also accepts unsigned values (0..255) and a base64 string.
type ByteArray []byte

func (b ByteArray) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("[]"), nil
	}

	buf := make([]byte, 0, len(b)*4+2)
	buf = append(buf, '[')
	for i, v := range b {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, int64(int8(v)), 10)
	}
	buf = append(buf, ']')
	return buf, nil
}

func (b *ByteArray) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*b = nil
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		decoded, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return fmt.Errorf("byte array: invalid base64: %w", err)
		}
		*b = decoded
		return nil
	}

	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return fmt.Errorf("byte array: %w", err)
	}

	out := make([]byte, len(ints))
	for i, v := range ints {
		if v < -128 || v > 255 {
			return fmt.Errorf("byte array: value %d at index %d is out of byte range", v, i)
		}
		out[i] = byte(v)
	}
	*b = out
	return nil
}
