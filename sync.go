package pixring

import "sync"

// SyncAllocator wraps an Allocator with a single mutex so that several
// goroutines can allocate from one buffer.
//
// Region.Release does not take the lock. The released flag is atomic, so a
// release is observed by the next sweep on any goroutine.
type SyncAllocator struct {
	mu sync.Mutex
	a  *Allocator
}

// NewSync creates a synchronized allocator. See New.
func NewSync(hint Size, opts ...Option) (*SyncAllocator, error) {
	a, err := New(hint, opts...)
	if err != nil {
		return nil, err
	}
	return Synchronized(a), nil
}

// Synchronized wraps an existing allocator. The caller must stop using a
// directly once it is wrapped.
func Synchronized(a *Allocator) *SyncAllocator {
	return &SyncAllocator{a: a}
}

// Allocate is Allocator.Allocate under the lock.
func (s *SyncAllocator) Allocate(width, height int) (*Region, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Allocate(width, height)
}

// Hint returns the sizing hint.
func (s *SyncAllocator) Hint() Size {
	return s.a.Hint()
}

// Capacity returns the buffer length in elements.
func (s *SyncAllocator) Capacity() int {
	return s.a.Capacity()
}

// Len returns the number of listed regions.
func (s *SyncAllocator) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Len()
}

// Regions returns a snapshot of the live list.
func (s *SyncAllocator) Regions() []*Region {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Regions()
}

// Stats returns a consistent snapshot of the allocator statistics.
func (s *SyncAllocator) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Stats()
}

// Validate checks the allocator invariants under the lock.
func (s *SyncAllocator) Validate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Validate()
}
