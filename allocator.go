package pixring

import (
	"fmt"
	"math"
	"slices"

	"github.com/dustin/go-humanize"
)

// Allocator packs variably sized pixel regions into one fixed-length
// buffer. Live regions occupy disjoint spans kept in ascending offset
// order. New regions attach to either end of the occupied span: after the
// last region when the tail has room, otherwise before the first one.
//
// Released regions are not removed right away. When neither end has room,
// Allocate sweeps every released region out of the list and searches once
// more. Live data is never moved.
//
// Allocator is not safe for concurrent use; see SyncAllocator.
type Allocator struct {
	hint       Size
	clampRatio float64
	buf        []uint32

	// Sorted by offset, pairwise disjoint.
	live []*Region

	allocations uint64
	failures    uint64
	sweeps      uint64
	reclaimed   uint64
}

// New creates an allocator for regions of roughly hint size.
// The buffer holds DefaultCapacityFactor hint-sized regions unless changed
// with WithCapacityFactor or WithBuffer.
func New(hint Size, opts ...Option) (*Allocator, error) {
	if hint.Empty() {
		return nil, fmt.Errorf("%w: sizing hint %s", ErrInvalidDimensions, hint)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	buf := o.buffer
	if buf == nil {
		if hint.Width > math.MaxInt/hint.Height/o.capacityFactor {
			return nil, fmt.Errorf("%w: sizing hint %s times %d overflows the buffer length",
				ErrInvalidDimensions, hint, o.capacityFactor)
		}
		buf = make([]uint32, hint.Area()*o.capacityFactor)
	}

	Logger().Debug("pixring: allocator created",
		"hint", hint.String(), "capacity", len(buf), "clampRatio", o.clampRatio)

	return &Allocator{
		hint:       hint,
		clampRatio: o.clampRatio,
		buf:        buf,
		live:       make([]*Region, 0, 8),
	}, nil
}

// Allocate reserves a region for a requestedWidth x requestedHeight image.
//
// Each dimension is clamped to the clamp ratio times the sizing hint, so
// the granted Size may be smaller than requested. The region's pixels are
// not cleared.
//
// Returns ErrInvalidDimensions for non-positive requests and ErrOutOfSpace
// when no end of the live span fits the request after one sweep.
func (a *Allocator) Allocate(requestedWidth, requestedHeight int) (*Region, error) {
	if requestedWidth <= 0 || requestedHeight <= 0 {
		return nil, fmt.Errorf("%w: requested %dx%d", ErrInvalidDimensions, requestedWidth, requestedHeight)
	}

	size := Size{Width: requestedWidth, Height: requestedHeight}.Clamp(a.hint, a.clampRatio)
	if size.Empty() {
		return nil, fmt.Errorf("%w: %dx%d clamps to %s", ErrInvalidDimensions,
			requestedWidth, requestedHeight, size)
	}
	need := size.Area()

	offset, ok := a.findFreeOffset(need)
	if !ok {
		a.reclaim()
		offset, ok = a.findFreeOffset(need)
	}
	if !ok {
		a.failures++
		Logger().Warn("pixring: out of space",
			"need", need, "capacity", len(a.buf), "live", len(a.live))
		return nil, fmt.Errorf("%w: need %d elements, capacity %d, %d live regions",
			ErrOutOfSpace, need, len(a.buf), len(a.live))
	}

	r := newRegion(size.Width, size.Height, offset, a.buf)
	a.insert(r)
	a.allocations++

	Logger().Debug("pixring: region allocated",
		"offset", offset, "size", size.String(), "live", len(a.live))

	return r, nil
}

// findFreeOffset returns the start of a free span of need elements.
//
// Only the two ends of the live span are considered: the tail after the
// last region first, then the head before the first region. Space between
// live regions is never used directly; it becomes usable only once every
// region on one side of it has been swept.
func (a *Allocator) findFreeOffset(need int) (int, bool) {
	tailFree, headOccupied := 0, 0
	if n := len(a.live); n > 0 {
		tailFree = a.live[n-1].end
		headOccupied = a.live[0].offset
	}

	switch {
	case tailFree+need <= len(a.buf):
		return tailFree, true
	case need <= headOccupied:
		return headOccupied - need, true
	default:
		return 0, false
	}
}

// insert adds r at the end of the live list that keeps offsets ascending.
// findFreeOffset only returns spans before the first or after the last
// region, so the middle is never a candidate.
func (a *Allocator) insert(r *Region) {
	if len(a.live) > 0 && r.offset < a.live[0].offset {
		a.live = slices.Insert(a.live, 0, r)
		return
	}
	a.live = append(a.live, r)
}

// reclaim drops every released region from the live list and returns how
// many were removed.
func (a *Allocator) reclaim() int {
	before := len(a.live)
	a.live = slices.DeleteFunc(a.live, (*Region).Released)
	removed := before - len(a.live)

	a.sweeps++
	a.reclaimed += uint64(removed)

	Logger().Debug("pixring: reclaim sweep", "removed", removed, "live", len(a.live))
	return removed
}

// Hint returns the sizing hint the allocator was created with.
func (a *Allocator) Hint() Size {
	return a.hint
}

// Capacity returns the length of the shared buffer in elements.
func (a *Allocator) Capacity() int {
	return len(a.buf)
}

// Len returns the number of regions in the live list, including released
// regions that have not been swept yet.
func (a *Allocator) Len() int {
	return len(a.live)
}

// Regions returns a copy of the live list in ascending offset order.
func (a *Allocator) Regions() []*Region {
	return slices.Clone(a.live)
}

// Stats returns current occupancy and cumulative counters.
func (a *Allocator) Stats() Stats {
	s := Stats{
		Capacity:    len(a.buf),
		Live:        len(a.live),
		Allocations: a.allocations,
		Failures:    a.failures,
		Sweeps:      a.sweeps,
		Reclaimed:   a.reclaimed,
	}
	for _, r := range a.live {
		s.Occupied += r.Len()
		if r.Released() {
			s.Released++
		} else {
			s.Used += r.Len()
		}
	}
	if s.Capacity > 0 {
		s.Utilization = float64(s.Used) / float64(s.Capacity)
	}
	return s
}

// Validate checks the live list against the allocator invariants: every
// span lies inside the buffer, matches its dimensions, and starts at or
// after the end of its predecessor.
func (a *Allocator) Validate() error {
	prevEnd := 0
	for i, r := range a.live {
		switch {
		case r.width <= 0 || r.height <= 0:
			return fmt.Errorf("%w: region %d has size %dx%d", ErrCorrupt, i, r.width, r.height)
		case r.offset < 0 || r.end > len(a.buf):
			return fmt.Errorf("%w: region %d span [%d,%d) outside buffer of %d",
				ErrCorrupt, i, r.offset, r.end, len(a.buf))
		case r.end-r.offset != r.width*r.height:
			return fmt.Errorf("%w: region %d span length %d, want %d",
				ErrCorrupt, i, r.end-r.offset, r.width*r.height)
		case i > 0 && r.offset < prevEnd:
			return fmt.Errorf("%w: region %d starts at %d, before previous end %d",
				ErrCorrupt, i, r.offset, prevEnd)
		}
		prevEnd = r.end
	}
	return nil
}

// Stats contains allocator usage statistics.
type Stats struct {
	// Capacity is the buffer length in elements.
	Capacity int

	// Used is the number of elements held by unreleased regions.
	Used int

	// Occupied is the number of elements held by every listed region,
	// including released regions not yet swept.
	Occupied int

	// Live is the number of listed regions; Released of those are released.
	Live     int
	Released int

	// Cumulative counters.
	Allocations uint64
	Failures    uint64
	Sweeps      uint64
	Reclaimed   uint64

	// Utilization is Used/Capacity (0.0 to 1.0).
	Utilization float64
}

// String returns a human-readable summary of the stats.
func (s Stats) String() string {
	return fmt.Sprintf("Regions[%.1f%% used, %s/%s px, %d live (%d released), %d allocs, %d sweeps, %d reclaimed, %d failures]",
		s.Utilization*100,
		humanize.Comma(int64(s.Used)),
		humanize.Comma(int64(s.Capacity)),
		s.Live,
		s.Released,
		s.Allocations,
		s.Sweeps,
		s.Reclaimed,
		s.Failures)
}
