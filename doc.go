// Package pixring packs short-lived pixel buffers into one fixed-size
// backing array.
//
// # Overview
//
// A document viewer renders a handful of pages at a time, each roughly the
// size of the screen, and drops them as the reader moves on. pixring keeps
// all of those bitmaps in a single []uint32 sized for a few screens and
// hands out Regions, views over disjoint spans of it. Nothing is copied or
// moved once granted.
//
// # Quick Start
//
//	a, err := pixring.New(pixring.Size{Width: 1024, Height: 768})
//	if err != nil {
//	    return err
//	}
//
//	r, err := a.Allocate(1024, 1400) // height clamped to 844
//	if err != nil {
//	    return err // wraps pixring.ErrOutOfSpace
//	}
//	renderPage(r.Pixels(), r.Stride())
//	r.DrawTo(screen, image.Point{}, screen.Bounds())
//
//	r.Release() // space is reclaimed by a later Allocate
//
// # Allocation Strategy
//
// Live regions are kept sorted by offset. A new region goes right after the
// last one when the tail has room, otherwise right before the first one.
// When neither end fits, released regions are swept out of the list and the
// search runs once more; if it still fails Allocate returns ErrOutOfSpace.
//
// Free space between two live regions is never used directly. It becomes
// available only when it joins an end of the live span, which matches the
// usual pattern of reading a document front to back: old pages die first.
//
// # Pixel Format
//
// Each element is one 0xAARRGGBB pixel, not premultiplied. Regions implement
// draw.Image, so they work with image/draw and golang.org/x/image/draw.
// Reused space is not cleared; a new region holds whatever was there before
// until it is written.
//
// # Thread Safety
//
// Allocator is meant for a single owner. SyncAllocator adds one mutex around
// allocation. Region.Release is always safe to call from any goroutine.
package pixring
