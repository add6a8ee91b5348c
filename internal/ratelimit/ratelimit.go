package ratelimit

import (
	"sync"
	"time"
)

const (
	DefaultMaxAttempts = 5
	DefaultWindow      = 15 * time.Minute
)

// Record tracks login attempts for one identifier inside a window anchored
// at the first attempt.
type Record struct {
	Count       int
	WindowStart time.Time
}

// Store holds one Record per identifier. Implementations must be safe for
// concurrent use; the Limiter serializes its own read-modify-write sequence.
type Store interface {
	Get(key string) (Record, bool)
	Set(key string, rec Record)
	Delete(key string)
}

type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Get(key string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[key]
	return rec, ok
}

func (s *MemoryStore) Set(key string, rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = rec
}

func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Limiter blocks an identifier once it exceeds MaxAttempts inside a fixed
// window anchored at the identifier's first attempt. The in-memory store
// does not coordinate across instances, so under horizontal scaling the
// limit is only approximate.
type Limiter struct {
	mu     sync.Mutex
	store  Store
	max    int
	window time.Duration
	now    func() time.Time
}

type Option func(*Limiter)

// WithClock substitutes the time source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

func WithStore(s Store) Option {
	return func(l *Limiter) { l.store = s }
}

func New(maxAttempts int, window time.Duration, opts ...Option) *Limiter {
	l := &Limiter{
		store:  NewMemoryStore(),
		max:    maxAttempts,
		window: window,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ShouldBlock registers one attempt for the identifier and reports whether
// it must be rejected. The first attempt after the window elapses resets
// the record rather than compounding it.
func (l *Limiter) ShouldBlock(identifier string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	rec, ok := l.store.Get(identifier)
	if !ok || now.Sub(rec.WindowStart) > l.window {
		l.store.Set(identifier, Record{Count: 1, WindowStart: now})
		return false
	}

	rec.Count++
	l.store.Set(identifier, rec)
	return rec.Count > l.max
}

// Clear drops the record for the identifier, lifting any penalty
// immediately. Called on successful login.
func (l *Limiter) Clear(identifier string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.store.Delete(identifier)
}
