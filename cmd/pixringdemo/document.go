package main

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/pixring"
)

// document is a stand-in for a real page source: every page is a colour
// gradient with its number printed near the top.
type document struct {
	screen pixring.Size
	pages  int
	face   font.Face
}

func newDocument(screen pixring.Size, pages int) (*document, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	size := float64(screen.Height) / 16
	if size < 12 {
		size = 12
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}

	return &document{screen: screen, pages: pages, face: face}, nil
}

// Close releases the font face.
func (d *document) Close() {
	_ = d.face.Close()
}

// PageSize returns the size a page would like to be rendered at. Every
// third page is taller than the screen and gets clamped by the allocator.
func (d *document) PageSize(page int) pixring.Size {
	return pixring.Size{
		Width:  d.screen.Width,
		Height: d.screen.Height + (page%3)*d.screen.Height/4,
	}
}

// Render draws page into r.
func (d *document) Render(page int, r *pixring.Region) error {
	if page < 0 || page >= d.pages {
		return fmt.Errorf("page %d out of range [0,%d)", page, d.pages)
	}

	hue := uint8(page * 40)
	px := r.Pixels()
	w, h := r.Width(), r.Height()
	for y := 0; y < h; y++ {
		shade := uint8(255 * y / h)
		v := pixring.PackARGB(color.NRGBA{R: hue, G: 255 - shade, B: shade, A: 255})
		row := px[y*w : (y+1)*w]
		for x := range row {
			row[x] = v
		}
	}

	m := d.face.Metrics()
	dr := font.Drawer{
		Dst:  r,
		Src:  image.NewUniform(color.Black),
		Face: d.face,
		Dot:  fixed.Point26_6{X: fixed.I(w / 20), Y: m.Ascent + fixed.I(h/40)},
	}
	dr.DrawString(fmt.Sprintf("Page %d", page+1))
	return nil
}
