package pixring

import (
	"fmt"
	"sync/atomic"
)

// Region is one claim on a span of an Allocator's shared pixel buffer.
//
// A Region does not own memory. It is a view over [Offset, EndOffset) of
// the allocator's buffer; the allocator must outlive it. Pixels are stored
// row by row with a stride equal to Width, one 0xAARRGGBB value per pixel.
//
// Once Release is called the span may be handed to a later allocation, so
// the caller must not read or write through the Region afterwards.
type Region struct {
	width  int
	height int
	offset int
	end    int // offset + width*height

	buf      []uint32 // shared with the allocator, never resliced by it
	released atomic.Bool
}

// newRegion creates a region over buf[offset:offset+width*height].
// Only the allocator constructs regions; it has already validated the span.
func newRegion(width, height, offset int, buf []uint32) *Region {
	return &Region{
		width:  width,
		height: height,
		offset: offset,
		end:    offset + width*height,
		buf:    buf,
	}
}

// Width returns the granted width in pixels.
func (r *Region) Width() int {
	return r.width
}

// Height returns the granted height in pixels.
func (r *Region) Height() int {
	return r.height
}

// Size returns the granted dimensions, which may be smaller than requested.
func (r *Region) Size() Size {
	return Size{Width: r.width, Height: r.height}
}

// Stride returns the number of elements per row.
func (r *Region) Stride() int {
	return r.width
}

// Offset returns the index of the first element in the shared buffer.
func (r *Region) Offset() int {
	return r.offset
}

// Len returns the number of elements occupied (Width*Height).
func (r *Region) Len() int {
	return r.end - r.offset
}

// EndOffset returns the exclusive upper bound of the span.
func (r *Region) EndOffset() int {
	return r.end
}

// Pixels returns the region's window of the shared buffer.
// The slice capacity ends at EndOffset, so appending never writes into a
// neighbouring region. Initial contents are unspecified: the buffer is not
// cleared when space is reused.
func (r *Region) Pixels() []uint32 {
	return r.buf[r.offset:r.end:r.end]
}

// Released reports whether Release has been called.
func (r *Region) Released() bool {
	return r.released.Load()
}

// Release marks the region as no longer needed. Its space is reclaimed by
// the next allocation that has to sweep. Calling Release more than once is
// harmless.
func (r *Region) Release() {
	if r.released.Swap(true) {
		return
	}
	Logger().Debug("pixring: region released",
		"offset", r.offset, "width", r.width, "height", r.height)
}

// String returns a short description such as "Region(40x30 @100..1300)".
func (r *Region) String() string {
	state := ""
	if r.Released() {
		state = " released"
	}
	return fmt.Sprintf("Region(%dx%d @%d..%d%s)", r.width, r.height, r.offset, r.end, state)
}
