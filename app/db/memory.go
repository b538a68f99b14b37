package db

import "sync"

// InMemoryStorage keeps counter in process memory
type InMemoryStorage struct {
	lookups int64
	mx      sync.RWMutex
}

func (d *InMemoryStorage) Increment() (int64, error) {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.lookups++
	return d.lookups, nil
}

func (d *InMemoryStorage) Total() (int64, error) {
	d.mx.RLock()
	defer d.mx.RUnlock()
	return d.lookups, nil
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{}
}
