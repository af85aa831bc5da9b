package rearrange

import (
	"image"
	"image/color"
	"image/draw"
)

// Buffer wraps an image with the three operations a rearrangement needs:
// allocating a blank image of the same shape, cropping a region and pasting
// a region back.
type Buffer struct {
	img image.Image
}

// Wrap returns a Buffer reading from img
func Wrap(img image.Image) *Buffer {
	return &Buffer{img: img}
}

// Image returns the wrapped image
func (b *Buffer) Image() image.Image {
	return b.img
}

// Bounds returns the bounds of the wrapped image
func (b *Buffer) Bounds() image.Rectangle {
	return b.img.Bounds()
}

// ColorModel returns the color model of the wrapped image
func (b *Buffer) ColorModel() color.Model {
	return b.img.ColorModel()
}

// Blank allocates a zeroed image with the same bounds and color model.
//
// YCbCr images are allocated at 4:4:4 so that every pixel keeps its own
// samples; images of unknown type become RGBA64.
func (b *Buffer) Blank() *Buffer {
	r := b.img.Bounds()

	var out image.Image
	switch m := b.img.(type) {
	case *image.RGBA:
		out = image.NewRGBA(r)
	case *image.NRGBA:
		out = image.NewNRGBA(r)
	case *image.RGBA64:
		out = image.NewRGBA64(r)
	case *image.NRGBA64:
		out = image.NewNRGBA64(r)
	case *image.Gray:
		out = image.NewGray(r)
	case *image.Gray16:
		out = image.NewGray16(r)
	case *image.Alpha:
		out = image.NewAlpha(r)
	case *image.Alpha16:
		out = image.NewAlpha16(r)
	case *image.CMYK:
		out = image.NewCMYK(r)
	case *image.Paletted:
		palette := make(color.Palette, len(m.Palette))
		copy(palette, m.Palette)
		out = image.NewPaletted(r, palette)
	case *image.NYCbCrA:
		out = image.NewNYCbCrA(r, image.YCbCrSubsampleRatio444)
	case *image.YCbCr:
		out = image.NewYCbCr(r, image.YCbCrSubsampleRatio444)
	default:
		out = image.NewRGBA64(r)
	}
	return &Buffer{img: out}
}

// Crop returns the region r of the buffer without copying pixel data
func (b *Buffer) Crop(r image.Rectangle) image.Image {
	if s, ok := b.img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return s.SubImage(r)
	}
	return &region{img: b.img, rect: r.Intersect(b.img.Bounds())}
}

// Paste overwrites the buffer at dp with the whole of src. Nothing is blended.
func (b *Buffer) Paste(src image.Image, dp image.Point) {
	sr := src.Bounds()
	dr := image.Rectangle{Min: dp, Max: dp.Add(sr.Size())}

	if dst, ok := pixelsOf(b.img); ok {
		if s, ok := pixelsOf(src); ok && s.kind == dst.kind {
			copyRows(dst, s, dp, sr)
			return
		}
	}

	switch dst := b.img.(type) {
	case *image.NYCbCrA:
		if s, ok := src.(*image.NYCbCrA); ok {
			copyYCbCr(&dst.YCbCr, &s.YCbCr, dp, sr)
			for y := 0; y < sr.Dy(); y++ {
				di := dst.AOffset(dp.X, dp.Y+y)
				si := s.AOffset(sr.Min.X, sr.Min.Y+y)
				copy(dst.A[di:di+sr.Dx()], s.A[si:si+sr.Dx()])
			}
			return
		}
	case *image.YCbCr:
		if s, ok := src.(*image.YCbCr); ok {
			copyYCbCr(dst, s, dp, sr)
			return
		}
	}

	if dst, ok := b.img.(draw.Image); ok {
		draw.Draw(dst, dr, src, sr.Min, draw.Src)
	}
}

// pixels is the interleaved layout shared by the standard library image types
type pixels struct {
	kind   string
	pix    []uint8
	stride int
	bpp    int
	offset func(x, y int) int
}

func pixelsOf(img image.Image) (pixels, bool) {
	switch m := img.(type) {
	case *image.RGBA:
		return pixels{"rgba", m.Pix, m.Stride, 4, m.PixOffset}, true
	case *image.NRGBA:
		return pixels{"nrgba", m.Pix, m.Stride, 4, m.PixOffset}, true
	case *image.RGBA64:
		return pixels{"rgba64", m.Pix, m.Stride, 8, m.PixOffset}, true
	case *image.NRGBA64:
		return pixels{"nrgba64", m.Pix, m.Stride, 8, m.PixOffset}, true
	case *image.Gray:
		return pixels{"gray", m.Pix, m.Stride, 1, m.PixOffset}, true
	case *image.Gray16:
		return pixels{"gray16", m.Pix, m.Stride, 2, m.PixOffset}, true
	case *image.Alpha:
		return pixels{"alpha", m.Pix, m.Stride, 1, m.PixOffset}, true
	case *image.Alpha16:
		return pixels{"alpha16", m.Pix, m.Stride, 2, m.PixOffset}, true
	case *image.CMYK:
		return pixels{"cmyk", m.Pix, m.Stride, 4, m.PixOffset}, true
	case *image.Paletted:
		return pixels{"paletted", m.Pix, m.Stride, 1, m.PixOffset}, true
	}
	return pixels{}, false
}

func copyRows(dst, src pixels, dp image.Point, sr image.Rectangle) {
	n := sr.Dx() * src.bpp
	for y := 0; y < sr.Dy(); y++ {
		di := dst.offset(dp.X, dp.Y+y)
		si := src.offset(sr.Min.X, sr.Min.Y+y)
		copy(dst.pix[di:di+n], src.pix[si:si+n])
	}
}

// copyYCbCr copies samples pixel by pixel. dst must be 4:4:4; src may use any
// subsample ratio.
func copyYCbCr(dst, src *image.YCbCr, dp image.Point, sr image.Rectangle) {
	for y := 0; y < sr.Dy(); y++ {
		for x := 0; x < sr.Dx(); x++ {
			sx, sy := sr.Min.X+x, sr.Min.Y+y
			dx, dy := dp.X+x, dp.Y+y

			dst.Y[dst.YOffset(dx, dy)] = src.Y[src.YOffset(sx, sy)]

			di := dst.COffset(dx, dy)
			si := src.COffset(sx, sy)
			dst.Cb[di] = src.Cb[si]
			dst.Cr[di] = src.Cr[si]
		}
	}
}

// region is a read-only view used for images that cannot produce a SubImage
type region struct {
	img  image.Image
	rect image.Rectangle
}

func (r *region) ColorModel() color.Model { return r.img.ColorModel() }
func (r *region) Bounds() image.Rectangle { return r.rect }

func (r *region) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(r.rect) {
		return color.Transparent
	}
	return r.img.At(x, y)
}
