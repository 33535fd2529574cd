package pixring

// Default allocator settings.
const (
	// DefaultCapacityFactor is how many natural-sized regions the shared
	// buffer holds.
	DefaultCapacityFactor = 5

	// DefaultClampRatio caps each dimension of a request at 110% of the
	// sizing hint.
	DefaultClampRatio = 1.1
)

// Option configures an Allocator during creation.
//
// Example:
//
//	// Room for eight screens, no oversize allowance.
//	a, err := pixring.New(screen,
//	    pixring.WithCapacityFactor(8),
//	    pixring.WithClampRatio(1.0))
type Option func(*allocatorOptions)

// allocatorOptions holds optional configuration for Allocator creation.
type allocatorOptions struct {
	capacityFactor int
	clampRatio     float64
	buffer         []uint32
}

// defaultOptions returns the default allocator options.
func defaultOptions() allocatorOptions {
	return allocatorOptions{
		capacityFactor: DefaultCapacityFactor,
		clampRatio:     DefaultClampRatio,
	}
}

// WithCapacityFactor sizes the shared buffer to n times the hint area.
// Values <= 0 keep DefaultCapacityFactor.
func WithCapacityFactor(n int) Option {
	return func(o *allocatorOptions) {
		if n > 0 {
			o.capacityFactor = n
		}
	}
}

// WithClampRatio sets the multiple of the hint that bounds each requested
// dimension. Values <= 0 keep DefaultClampRatio.
func WithClampRatio(r float64) Option {
	return func(o *allocatorOptions) {
		if r > 0 {
			o.clampRatio = r
		}
	}
}

// WithBuffer makes the allocator carve regions out of buf instead of
// allocating its own storage. The capacity becomes len(buf) and the
// capacity factor is ignored. The caller must not use buf directly while
// the allocator is in use.
//
// Example:
//
//	// Reuse one long-lived slice across allocator generations.
//	storage := make([]uint32, 4<<20)
//	a, err := pixring.New(screen, pixring.WithBuffer(storage))
func WithBuffer(buf []uint32) Option {
	return func(o *allocatorOptions) {
		if len(buf) > 0 {
			o.buffer = buf
		}
	}
}
