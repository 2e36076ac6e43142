package utils

import (
	"sync"
)

// SyncMap is a typed wrapper over sync.Map. The currency catalog is
// read far more often than it is written, which is the access pattern
// sync.Map is built for: readers are never blocked by the occasional
// writer.
type SyncMap[K comparable, V any] struct {
	storage sync.Map
}

func (m *SyncMap[K, V]) Load(key K) (V, bool) {
	var zero V
	value, ok := m.storage.Load(key)
	if !ok {
		return zero, ok
	}
	return value.(V), ok
}

func (m *SyncMap[K, V]) Store(key K, value V) { m.storage.Store(key, value) }

func (m *SyncMap[K, V]) Delete(key K) { m.storage.Delete(key) }

func (m *SyncMap[K, V]) LoadAndDelete(key K) (V, bool) {
	value, loaded := m.storage.LoadAndDelete(key)
	if !loaded {
		var zero V
		return zero, loaded
	}
	return value.(V), loaded
}

func (m *SyncMap[K, V]) LoadOrStore(key K, value V) (V, bool) {
	actual, loaded := m.storage.LoadOrStore(key, value)
	if !loaded {
		var zero V
		return zero, loaded
	}
	return actual.(V), loaded
}

func (m *SyncMap[K, V]) Range(f func(key K, value V) bool) {
	m.storage.Range(func(key, value any) bool {
		return f(key.(K), value.(V))
	})
}

func (m *SyncMap[K, V]) Swap(key K, value V) (V, bool) {
	previous, loaded := m.storage.Swap(key, value)
	if !loaded {
		var zero V
		return zero, loaded
	}
	return previous.(V), loaded
}
