package pixring

import (
	"image"
	"image/color"
	"testing"

	xdraw "golang.org/x/image/draw"
)

func TestPackARGB(t *testing.T) {
	tests := []struct {
		name string
		c    color.Color
		want uint32
	}{
		{"opaque red", color.NRGBA{R: 255, A: 255}, 0xffff0000},
		{"half green", color.NRGBA{G: 255, A: 128}, 0x8000ff00},
		{"gray", color.Gray{Y: 0x40}, 0xff404040},
		{"transparent", color.Transparent, 0x00000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PackARGB(tt.c); got != tt.want {
				t.Errorf("PackARGB(%v) = %#08x, want %#08x", tt.c, got, tt.want)
			}
		})
	}

	if got := UnpackARGB(0x80102030); got != (color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x80}) {
		t.Errorf("UnpackARGB() = %v", got)
	}
}

func TestRegionSetAt(t *testing.T) {
	a := newTestAllocator(t, Size{Width: 10, Height: 10})
	mustAllocate(t, a, 3, 3) // keep the region under test off offset 0
	r := mustAllocate(t, a, 4, 2)

	if r.Bounds() != image.Rect(0, 0, 4, 2) {
		t.Errorf("Bounds() = %v", r.Bounds())
	}
	if r.ColorModel() != color.NRGBAModel {
		t.Error("ColorModel() is not NRGBA")
	}

	blue := color.NRGBA{B: 255, A: 255}
	r.Set(3, 1, blue)
	if got := r.At(3, 1); got != blue {
		t.Errorf("At(3, 1) = %v, want %v", got, blue)
	}
	if got := r.Pixels()[1*4+3]; got != 0xff0000ff {
		t.Errorf("pixel = %#x, want row-major layout", got)
	}

	// Out of bounds writes are dropped; reads are transparent.
	r.Set(4, 0, blue)
	r.Set(-1, 0, blue)
	if got := r.At(4, 0); got != (color.NRGBA{}) {
		t.Errorf("At(4, 0) = %v, want transparent", got)
	}
	for i, v := range r.Pixels() {
		if i != 7 && v == 0xff0000ff {
			t.Errorf("pixel %d written by out of bounds Set", i)
		}
	}
}

func TestRegionFillAndToImage(t *testing.T) {
	a := newTestAllocator(t, Size{Width: 10, Height: 10})
	r := mustAllocate(t, a, 5, 3)
	c := color.NRGBA{R: 10, G: 20, B: 30, A: 200}
	r.Fill(c)

	img := r.ToImage()
	if img.Bounds() != r.Bounds() {
		t.Fatalf("ToImage().Bounds() = %v", img.Bounds())
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			if got := img.NRGBAAt(x, y); got != c {
				t.Fatalf("ToImage() at (%d,%d) = %v, want %v", x, y, got, c)
			}
		}
	}
}

func TestRegionDrawTo(t *testing.T) {
	a := newTestAllocator(t, Size{Width: 10, Height: 10})
	r := mustAllocate(t, a, 4, 4)
	red := color.NRGBA{R: 255, A: 255}
	r.Fill(red)

	dst := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	// Ask for more than the region has; the copy is clipped to 4x4.
	r.DrawTo(dst, image.Pt(2, 3), image.Rect(0, 0, 8, 8))

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inside := x >= 2 && x < 6 && y >= 3 && y < 7
			got := dst.NRGBAAt(x, y)
			if inside && got != red {
				t.Fatalf("(%d,%d) = %v, want red", x, y, got)
			}
			if !inside && got != (color.NRGBA{}) {
				t.Fatalf("(%d,%d) = %v, want untouched", x, y, got)
			}
		}
	}

	// An empty source rectangle draws nothing.
	blank := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	r.DrawTo(blank, image.Point{}, image.Rect(5, 5, 8, 8))
	if blank.NRGBAAt(0, 0) != (color.NRGBA{}) {
		t.Error("DrawTo with a disjoint source rectangle drew pixels")
	}
}

func TestRegionDrawScaled(t *testing.T) {
	a := newTestAllocator(t, Size{Width: 10, Height: 10})
	r := mustAllocate(t, a, 2, 1)
	left := color.NRGBA{R: 255, A: 255}
	right := color.NRGBA{G: 255, A: 255}
	r.Set(0, 0, left)
	r.Set(1, 0, right)

	bounds := image.Rect(0, 0, 4, 2)
	tests := []struct {
		name string
		dst  xdraw.Image
	}{
		{"NRGBA", image.NewNRGBA(bounds)},
		{"RGBA", image.NewRGBA(bounds)},
		{"RGBA64", image.NewRGBA64(bounds)},
		{"Region", mustAllocate(t, a, 4, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r.DrawScaled(tt.dst, bounds, xdraw.NearestNeighbor)
			for y := 0; y < 2; y++ {
				for x := 0; x < 4; x++ {
					want := left
					if x >= 2 {
						want = right
					}
					got := color.NRGBAModel.Convert(tt.dst.At(x, y))
					if got != want {
						t.Errorf("(%d,%d) = %v, want %v", x, y, got, want)
					}
				}
			}
		})
	}

	// The default scaler must cover the destination.
	full := image.NewNRGBA(image.Rect(0, 0, 6, 3))
	r.DrawScaled(full, full.Bounds(), nil)
	if full.NRGBAAt(0, 0).A == 0 || full.NRGBAAt(5, 2).A == 0 {
		t.Error("DrawScaled with default scaler left pixels transparent")
	}
}

func TestRegionRGBA64(t *testing.T) {
	a := newTestAllocator(t, Size{Width: 4, Height: 4})
	r := mustAllocate(t, a, 2, 2)

	r.SetRGBA64(1, 1, color.RGBA64{R: 0xffff, B: 0xffff, A: 0xffff})
	if got := r.Pixels()[3]; got != 0xffff00ff {
		t.Errorf("pixel = %#x, want 0xffff00ff", got)
	}
	if got := r.RGBA64At(1, 1); got != (color.RGBA64{R: 0xffff, B: 0xffff, A: 0xffff}) {
		t.Errorf("RGBA64At(1, 1) = %v", got)
	}

	// Half-transparent white comes back premultiplied.
	r.Set(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 128})
	if got := r.RGBA64At(0, 0); got.R != got.A || got.A != 0x8080 {
		t.Errorf("RGBA64At(0, 0) = %v, want premultiplied 0x8080", got)
	}

	r.SetRGBA64(5, 5, color.RGBA64{A: 0xffff})
	if got := r.RGBA64At(-1, 0); got != (color.RGBA64{}) {
		t.Errorf("RGBA64At outside = %v, want transparent", got)
	}
}
