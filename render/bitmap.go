package render

import (
	"image"
	"image/color"
)

// Bitmap is a rectangular RGBA8 pixel buffer.
//
// Bitmaps are the pixel payload of tile updates and directly composited
// images: the content process rasterizes into one, and the compositor reads
// it when the update is promoted to visible content. A Bitmap carries no GPU
// state; uploads happen separately during painting.
type Bitmap struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewBitmap creates a bitmap with the given dimensions.
// Returns nil if either dimension is not positive.
func NewBitmap(width, height int) *Bitmap {
	if width <= 0 || height <= 0 {
		return nil
	}
	return &Bitmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the bitmap.
func (b *Bitmap) Width() int {
	return b.width
}

// Height returns the height of the bitmap.
func (b *Bitmap) Height() int {
	return b.height
}

// Data returns the raw pixel data (RGBA format).
func (b *Bitmap) Data() []uint8 {
	return b.data
}

// Fill sets every pixel to the given color.
func (b *Bitmap) Fill(c color.RGBA) {
	for i := 0; i < len(b.data); i += 4 {
		b.data[i+0] = c.R
		b.data[i+1] = c.G
		b.data[i+2] = c.B
		b.data[i+3] = c.A
	}
}

// SetPixel sets the color of a single pixel.
// Out-of-bounds coordinates are ignored.
func (b *Bitmap) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	i := (y*b.width + x) * 4
	b.data[i+0] = c.R
	b.data[i+1] = c.G
	b.data[i+2] = c.B
	b.data[i+3] = c.A
}

// PixelAt returns the color of a single pixel.
// Out-of-bounds coordinates return the zero color.
func (b *Bitmap) PixelAt(x, y int) color.RGBA {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return color.RGBA{}
	}
	i := (y*b.width + x) * 4
	return color.RGBA{
		R: b.data[i+0],
		G: b.data[i+1],
		B: b.data[i+2],
		A: b.data[i+3],
	}
}

// RGBA returns an *image.RGBA view sharing the bitmap's pixel memory.
// Mutating the returned image mutates the bitmap.
func (b *Bitmap) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    b.data,
		Stride: b.width * 4,
		Rect:   image.Rect(0, 0, b.width, b.height),
	}
}

// ToImage converts the bitmap to a freshly allocated image.RGBA.
func (b *Bitmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	copy(img.Pix, b.data)
	return img
}

// BitmapFromImage copies an image into a new bitmap.
// Returns nil for images with empty bounds.
func BitmapFromImage(img image.Image) *Bitmap {
	bounds := img.Bounds()
	bm := NewBitmap(bounds.Dx(), bounds.Dy())
	if bm == nil {
		return nil
	}

	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			c := color.RGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y))
			bm.SetPixel(x, y, c.(color.RGBA))
		}
	}

	return bm
}

// At implements the image.Image interface.
func (b *Bitmap) At(x, y int) color.Color {
	return b.PixelAt(x, y)
}

// Bounds implements the image.Image interface.
func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements the image.Image interface.
func (b *Bitmap) ColorModel() color.Model {
	return color.RGBAModel
}
