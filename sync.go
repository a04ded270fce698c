package strintern

import (
	"sync"

	"github.com/hupe1980/strintern/symbol"
)

// Synced is an Interner guarded by a read-write mutex.
//
// Lookups and resolution share the read lock. GetOrIntern probes under the
// read lock first and takes the write lock only for new strings. Strings
// returned by Resolve stay valid after the lock is released.
type Synced[S symbol.Symbol[S]] struct {
	mu sync.RWMutex
	in *Interner[S]
}

// NewSynced creates an empty Synced interner.
func NewSynced[S symbol.Symbol[S]](optFns ...Option) *Synced[S] {
	return &Synced[S]{in: New[S](optFns...)}
}

// Synchronize wraps in. The caller must not use in directly afterwards.
func Synchronize[S symbol.Symbol[S]](in *Interner[S]) *Synced[S] {
	return &Synced[S]{in: in}
}

// GetOrIntern returns the symbol for s, interning it if needed.
func (s *Synced[S]) GetOrIntern(str string) S {
	s.mu.RLock()
	sym, ok := s.in.Get(str)
	s.mu.RUnlock()
	if ok {
		s.in.opts.metricsCollector.RecordIntern(true)
		return sym
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.in.GetOrIntern(str)
}

// Get returns the symbol for str without interning it.
func (s *Synced[S]) Get(str string) (S, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.in.Get(str)
}

// Contains reports whether str has been interned.
func (s *Synced[S]) Contains(str string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.in.Contains(str)
}

// Resolve returns the string for sym.
func (s *Synced[S]) Resolve(sym S) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.in.Resolve(sym)
}

// Len returns the number of interned strings.
func (s *Synced[S]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.in.Len()
}

// Strings returns the interned strings in symbol order.
func (s *Synced[S]) Strings() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.in.Strings()
}

// Stats returns memory statistics.
func (s *Synced[S]) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.in.Stats()
}

// Clone returns an unsynchronized deep copy.
func (s *Synced[S]) Clone() *Interner[S] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.in.Clone()
}

// View calls fn with the interner under the read lock. fn must not mutate it.
func (s *Synced[S]) View(fn func(in *Interner[S])) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.in)
}

// Update calls fn with the interner under the write lock.
func (s *Synced[S]) Update(fn func(in *Interner[S])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.in)
}
