package store

import (
	"bytes"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process store. Entries never expire.
type Memory struct {
	items *gocache.Cache
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{items: gocache.New(gocache.NoExpiration, 0)}
}

// Get implements Store. The returned slice is a copy.
func (m *Memory) Get(key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}
	v, ok := m.items.Get(key)
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(v.([]byte)), true, nil
}

// Set implements Store.
func (m *Memory) Set(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	m.items.Set(key, bytes.Clone(value), gocache.NoExpiration)
	return nil
}

// Delete removes key.
func (m *Memory) Delete(key string) {
	m.items.Delete(key)
}

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	return m.items.ItemCount()
}
