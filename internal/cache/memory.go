package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is an in-memory LRU Store with per-entry TTL.
type Memory struct {
	cache *lru.Cache[string, entry]
	ttl   time.Duration
	stop  chan struct{}
}

// NewMemory creates an in-memory store holding at most size entries, each
// expiring ttl after being written.
func NewMemory(size int, ttl time.Duration) (*Memory, error) {
	c, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}

	m := &Memory{
		cache: c,
		ttl:   ttl,
		stop:  make(chan struct{}),
	}
	go m.sweep()
	return m, nil
}

// Get implements Store. Expired entries are evicted on access.
func (m *Memory) Get(key string) ([]byte, bool) {
	e, ok := m.cache.Get(key)
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		m.cache.Remove(key)
		return nil, false
	}
	return e.data, true
}

// Set implements Store
func (m *Memory) Set(key string, value []byte) {
	m.cache.Add(key, entry{data: value, expiresAt: time.Now().Add(m.ttl)})
}

// Close stops the background sweeper.
func (m *Memory) Close() {
	close(m.stop)
}

// sweep periodically evicts expired entries so stale data does not pin LRU
// slots between accesses.
func (m *Memory) sweep() {
	ticker := time.NewTicker(m.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			for _, key := range m.cache.Keys() {
				if e, ok := m.cache.Peek(key); ok && now.After(e.expiresAt) {
					m.cache.Remove(key)
				}
			}
		case <-m.stop:
			return
		}
	}
}

// Noop is a Store that never hits, used when caching is disabled.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (*Noop) Get(string) ([]byte, bool) { return nil, false }
func (*Noop) Set(string, []byte)        {}
func (*Noop) Close()                    {}
