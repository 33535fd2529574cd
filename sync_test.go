package pixring

import (
	"errors"
	"sync"
	"testing"
)

func TestNewSyncInvalidHint(t *testing.T) {
	if _, err := NewSync(Size{}); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("NewSync() = %v, want ErrInvalidDimensions", err)
	}
}

func TestSyncAllocatorConcurrent(t *testing.T) {
	s, err := NewSync(Size{Width: 16, Height: 16})
	if err != nil {
		t.Fatalf("NewSync() = %v", err)
	}

	const (
		goroutines = 8
		rounds     = 200
	)

	var wg sync.WaitGroup
	for g := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rounds {
				r, err := s.Allocate(1+(g+i)%16, 1+i%16)
				if errors.Is(err, ErrOutOfSpace) {
					continue
				}
				if err != nil {
					t.Errorf("Allocate() = %v", err)
					return
				}
				// Write our own span only; another goroutine's span must
				// never overlap it.
				px := r.Pixels()
				for j := range px {
					px[j] = uint32(g)
				}
				for j, v := range px {
					if v != uint32(g) {
						t.Errorf("pixel %d = %d, want %d", j, v, g)
						return
					}
				}
				r.Release()
			}
		}()
	}
	wg.Wait()

	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	st := s.Stats()
	if st.Allocations == 0 {
		t.Error("no allocation succeeded")
	}
	if st.Live != s.Len() || len(s.Regions()) != st.Live {
		t.Errorf("Stats.Live = %d, Len() = %d", st.Live, s.Len())
	}
	if s.Capacity() != 16*16*DefaultCapacityFactor || s.Hint() != (Size{Width: 16, Height: 16}) {
		t.Errorf("Capacity() = %d, Hint() = %v", s.Capacity(), s.Hint())
	}
}
