package store

import (
	"bytes"
	"context"
	"sync"

	"github.com/MKhiriev/tim-encrypted-storage/models"
)

type memoryItem struct {
	data      []byte
	biometric bool
}

// memorySecureStorage keeps values in process memory.
type memorySecureStorage struct {
	mu    sync.RWMutex
	items map[string]memoryItem
}

// NewMemorySecureStorage returns a [SecureStorage] that lives as long as the
// process. Stored slices are copied on the way in and out.
func NewMemorySecureStorage() SecureStorage {
	return &memorySecureStorage{items: make(map[string]memoryItem)}
}

func (m *memorySecureStorage) Store(_ context.Context, data []byte, key string) error {
	return m.put(data, key, false)
}

func (m *memorySecureStorage) StoreBiometricProtected(_ context.Context, data []byte, key string) error {
	return m.put(data, key, true)
}

func (m *memorySecureStorage) Get(_ context.Context, key string) ([]byte, error) {
	return m.get(key, false)
}

func (m *memorySecureStorage) GetBiometricProtected(_ context.Context, key string) ([]byte, error) {
	return m.get(key, true)
}

func (m *memorySecureStorage) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}

func (m *memorySecureStorage) HasValue(_ context.Context, key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.items[key]
	return ok
}

func (m *memorySecureStorage) HasBiometricProtectedValue(_ context.Context, key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[key]
	return ok && item.biometric
}

func (m *memorySecureStorage) put(data []byte, key string, biometric bool) error {
	if data == nil {
		data = []byte{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = memoryItem{data: bytes.Clone(data), biometric: biometric}
	return nil
}

func (m *memorySecureStorage) get(key string, biometric bool) ([]byte, error) {
	m.mu.RLock()
	item, ok := m.items[key]
	m.mu.RUnlock()

	if !ok {
		return nil, models.NewSecureStorageError(models.FailedToLoadData, ErrItemNotFound)
	}
	if err := checkProtection(item.biometric, biometric); err != nil {
		return nil, err
	}
	return bytes.Clone(item.data), nil
}

// checkProtection enforces that biometric values are read only through the
// biometric path and vice versa.
func checkProtection(stored, requested bool) error {
	switch {
	case stored && !requested:
		return models.NewSecureStorageError(models.AuthenticationFailedForData, ErrBiometricProtected)
	case !stored && requested:
		return models.NewSecureStorageError(models.AuthenticationFailedForData, ErrNotBiometricProtected)
	default:
		return nil
	}
}
