package pixring

import "fmt"

// Size is a width x height pair in pixels.
type Size struct {
	Width  int
	Height int
}

// Area returns Width*Height, the number of pixels covered.
func (s Size) Area() int {
	return s.Width * s.Height
}

// Empty reports whether either dimension is non-positive.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Clamp limits each dimension of s to ratio times the matching dimension
// of natural. See ClampDim.
func (s Size) Clamp(natural Size, ratio float64) Size {
	return Size{
		Width:  ClampDim(s.Width, natural.Width, ratio),
		Height: ClampDim(s.Height, natural.Height, ratio),
	}
}

// String returns "WxH".
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ClampDim returns min(requested, floor(ratio*natural)).
//
// It caps a single request at a fixed multiple of the natural unit so that
// one oversized request cannot claim most of the shared buffer.
func ClampDim(requested, natural int, ratio float64) int {
	limit := int(ratio * float64(natural))
	if requested < limit {
		return requested
	}
	return limit
}
