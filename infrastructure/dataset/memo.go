package dataset

import (
	"sync"
	"sync/atomic"
	"time"
)

type snapshot[T any] struct {
	value    T
	loadedAt time.Time
}

// memo carrega o dataset uma vez por processo. reload troca o snapshot de forma
// atômica; leitores em andamento continuam com o snapshot anterior.
type memo[T any] struct {
	mu      sync.Mutex
	current atomic.Pointer[snapshot[T]]
	load    func() (T, error)
	now     func() time.Time
}

func newMemo[T any](load func() (T, error)) *memo[T] {
	return &memo[T]{load: load, now: time.Now}
}

func (m *memo[T]) get() (*snapshot[T], error) {
	if s := m.current.Load(); s != nil {
		return s, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s := m.current.Load(); s != nil {
		return s, nil
	}

	return m.reloadLocked()
}

// reload mantém o snapshot atual se a nova carga falhar
func (m *memo[T]) reload() (*snapshot[T], error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.reloadLocked()
}

func (m *memo[T]) reloadLocked() (*snapshot[T], error) {
	value, err := m.load()
	if err != nil {
		return nil, err
	}

	s := &snapshot[T]{value: value, loadedAt: m.now()}
	m.current.Store(s)

	return s, nil
}

func (m *memo[T]) peek() *snapshot[T] {
	return m.current.Load()
}
