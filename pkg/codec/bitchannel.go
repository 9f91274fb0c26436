package codec

import (
	"image"
	"image/draw"
)

// BitChannel views an NRGBA pixel buffer as a flat sequence of 1-bit slots,
// one per color channel value. Slots are addressed in row-major pixel order
// with R,G,B channel order within each pixel. Alpha never carries payload.
// This addressing is a wire contract: encoder and decoder must agree on it.
type BitChannel struct {
	img    *image.NRGBA
	width  int
	height int
}

// NewBitChannel wraps img in a bit-slot view.
func NewBitChannel(img *image.NRGBA) *BitChannel {
	b := img.Bounds()
	return &BitChannel{img: img, width: b.Dx(), height: b.Dy()}
}

// Capacity returns the total number of bit slots: width * height * 3.
func (c *BitChannel) Capacity() int {
	return c.width * c.height * 3
}

func (c *BitChannel) offset(i int) int {
	pixel := i / 3
	x := c.img.Rect.Min.X + pixel%c.width
	y := c.img.Rect.Min.Y + pixel/c.width
	return c.img.PixOffset(x, y) + i%3
}

// Write replaces the least-significant bit of the addressed channel value
// with bit, leaving the other seven bits untouched.
func (c *BitChannel) Write(i int, bit byte) {
	off := c.offset(i)
	c.img.Pix[off] = c.img.Pix[off]&0xFE | bit&1
}

// Read returns the least-significant bit of the addressed channel value.
func (c *BitChannel) Read(i int) byte {
	return c.img.Pix[c.offset(i)] & 1
}

// toNRGBA returns img as *image.NRGBA, converting if necessary. NRGBA keeps
// channel bytes non-premultiplied, so values round-trip through lossless
// containers without alpha distortion.
func toNRGBA(img image.Image) *image.NRGBA {
	if m, ok := img.(*image.NRGBA); ok {
		return m
	}
	bounds := img.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, img, bounds.Min, draw.Src)
	return dst
}

// cloneNRGBA returns a fresh NRGBA copy of img that shares no pixel storage
// with the input.
func cloneNRGBA(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, img, bounds.Min, draw.Src)
	return dst
}
