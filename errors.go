package pixring

import "errors"

// Allocation errors. Returned errors wrap these sentinels; match them with
// errors.Is.
var (
	// ErrInvalidDimensions is returned when a requested or hinted width or
	// height is non-positive.
	ErrInvalidDimensions = errors.New("pixring: invalid dimensions")

	// ErrOutOfSpace is returned when neither end of the live span can hold
	// the request, even after sweeping released regions.
	ErrOutOfSpace = errors.New("pixring: not enough space in buffer")

	// ErrCorrupt is returned by Validate when the live list breaks an
	// ordering or bounds invariant.
	ErrCorrupt = errors.New("pixring: region list corrupt")
)
