package cache

import (
	"context"
	"sync"
	"time"
)

type entrada struct {
	valor  []byte
	expira time.Time
	tags   []string
}

// MemoryStore caché en proceso con TTL e índice de etiquetas.
type MemoryStore struct {
	mu         sync.RWMutex
	entradas   map[string]entrada
	porTag     map[string]map[string]struct{}
	versiones  map[string]uint64
	defaultTTL time.Duration
	now        func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore crea un store en memoria; defaultTTL se usa cuando Set recibe ttl <= 0.
func NewMemoryStore(defaultTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		entradas:   map[string]entrada{},
		porTag:     map[string]map[string]struct{}{},
		versiones:  map[string]uint64{},
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.entradas[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.expira.IsZero() && !m.now().Before(e.expira) {
		m.mu.Lock()
		m.borrar(key)
		m.mu.Unlock()
		return nil, false, nil
	}
	return e.valor, true, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration, tags ...string) error {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}
	e := entrada{valor: append([]byte(nil), value...), tags: append([]string(nil), tags...)}
	if ttl > 0 {
		e.expira = m.now().Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.borrar(key)
	m.entradas[key] = e
	for _, t := range tags {
		set, ok := m.porTag[t]
		if !ok {
			set = map[string]struct{}{}
			m.porTag[t] = set
		}
		set[key] = struct{}{}
	}
	return nil
}

func (m *MemoryStore) InvalidateTags(_ context.Context, tags ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range tags {
		for key := range m.porTag[t] {
			m.borrar(key)
		}
		delete(m.porTag, t)
		m.versiones[t]++
	}
	return nil
}

func (m *MemoryStore) Version(_ context.Context, tags ...string) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var v uint64
	for _, t := range tags {
		v += m.versiones[t]
	}
	return v, nil
}

// Len número de entradas (incluidas las caducadas aún no purgadas).
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entradas)
}

// borrar requiere m.mu tomado en escritura.
func (m *MemoryStore) borrar(key string) {
	e, ok := m.entradas[key]
	if !ok {
		return
	}
	delete(m.entradas, key)
	for _, t := range e.tags {
		if set, ok := m.porTag[t]; ok {
			delete(set, key)
			if len(set) == 0 {
				delete(m.porTag, t)
			}
		}
	}
}
