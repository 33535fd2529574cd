package pixring

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Region implements draw.RGBA64Image over its own pixel window. The x/image
// scalers only read RGBA64Image sources into RGBA64Image destinations.
var (
	_ draw.Image       = (*Region)(nil)
	_ draw.RGBA64Image = (*Region)(nil)
)

// PackARGB converts a color to the 0xAARRGGBB element format stored in the
// shared buffer. Channels are not premultiplied.
func PackARGB(c color.Color) uint32 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA) //nolint:forcetypeassert // NRGBAModel always yields NRGBA
	return uint32(n.A)<<24 | uint32(n.R)<<16 | uint32(n.G)<<8 | uint32(n.B)
}

// UnpackARGB converts a 0xAARRGGBB element to a color.
func UnpackARGB(v uint32) color.NRGBA {
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: uint8(v >> 24),
	}
}

// ColorModel implements the image.Image interface.
func (r *Region) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements the image.Image interface. The origin is (0, 0).
func (r *Region) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.width, r.height)
}

// At implements the image.Image interface.
// Points outside the region are transparent.
func (r *Region) At(x, y int) color.Color {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return color.NRGBA{}
	}
	return UnpackARGB(r.buf[r.offset+y*r.width+x])
}

// Set implements the draw.Image interface.
// Points outside the region are ignored.
func (r *Region) Set(x, y int, c color.Color) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	r.buf[r.offset+y*r.width+x] = PackARGB(c)
}

// RGBA64At implements the image.RGBA64Image interface.
// Points outside the region are transparent.
func (r *Region) RGBA64At(x, y int) color.RGBA64 {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return color.RGBA64{}
	}
	cr, cg, cb, ca := UnpackARGB(r.buf[r.offset+y*r.width+x]).RGBA()
	return color.RGBA64{R: uint16(cr), G: uint16(cg), B: uint16(cb), A: uint16(ca)}
}

// SetRGBA64 implements the draw.RGBA64Image interface.
// Points outside the region are ignored.
func (r *Region) SetRGBA64(x, y int, c color.RGBA64) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	r.buf[r.offset+y*r.width+x] = PackARGB(c)
}

// Fill sets every pixel of the region to c.
func (r *Region) Fill(c color.Color) {
	v := PackARGB(c)
	px := r.Pixels()
	for i := range px {
		px[i] = v
	}
}

// DrawTo copies the sr part of the region into dst with its top-left
// corner at dp. sr is clipped to the region bounds first, so callers can
// pass the size they asked for even when a smaller region was granted.
func (r *Region) DrawTo(dst draw.Image, dp image.Point, sr image.Rectangle) {
	sr = sr.Intersect(r.Bounds())
	if sr.Empty() {
		return
	}
	xdraw.Copy(dst, dp, r, sr, xdraw.Src, nil)
}

// DrawScaled scales the whole region into dr of dst.
// A nil scaler uses xdraw.ApproxBiLinear.
func (r *Region) DrawScaled(dst draw.Image, dr image.Rectangle, s xdraw.Scaler) {
	if s == nil {
		s = xdraw.ApproxBiLinear
	}
	s.Scale(dst, dr, r, r.Bounds(), xdraw.Src, nil)
}

// ToImage copies the region into a new image.NRGBA.
func (r *Region) ToImage() *image.NRGBA {
	img := image.NewNRGBA(r.Bounds())
	px := r.Pixels()
	for i, v := range px {
		j := i * 4
		img.Pix[j+0] = uint8(v >> 16)
		img.Pix[j+1] = uint8(v >> 8)
		img.Pix[j+2] = uint8(v)
		img.Pix[j+3] = uint8(v >> 24)
	}
	return img
}
