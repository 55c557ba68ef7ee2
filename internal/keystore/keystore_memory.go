package keystore

import (
	"context"
	"sync"
	"time"

	"github.com/awnumar/memguard"
)

type memoryEntry struct {
	spec       KeySpec
	material   *memguard.Enclave
	generation int64
}

type memoryKeystore struct {
	cipherFactory

	mu         sync.RWMutex
	entries    map[string]memoryEntry
	generation int64
}

// NewMemoryKeystore returns a [Keystore] whose entries live as long as the
// process. authWindow bounds how long one Authenticate call stays valid;
// zero selects [DefaultAuthWindow].
func NewMemoryKeystore(authWindow time.Duration) Keystore {
	return &memoryKeystore{
		cipherFactory: newCipherFactory(authWindow),
		entries:       make(map[string]memoryEntry),
	}
}

func (m *memoryKeystore) GetKey(_ context.Context, alias string) (*SecretKey, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[alias]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return &SecretKey{
		alias:       alias,
		spec:        entry.spec,
		material:    entry.material,
		invalidated: entry.spec.InvalidatedByBiometricEnrollment && entry.generation < m.generation,
	}, nil
}

func (m *memoryKeystore) GenerateKey(_ context.Context, alias string, spec KeySpec) (*SecretKey, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	material := memguard.NewEnclaveRandom(spec.Size / 8)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[alias] = memoryEntry{spec: spec, material: material, generation: m.generation}
	return &SecretKey{alias: alias, spec: spec, material: material}, nil
}

func (m *memoryKeystore) DeleteKey(_ context.Context, alias string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, alias)
	return nil
}

func (m *memoryKeystore) ContainsAlias(_ context.Context, alias string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.entries[alias]
	return ok, nil
}

func (m *memoryKeystore) EnrollmentChanged(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.generation++
	return nil
}
