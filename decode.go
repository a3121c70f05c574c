package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/ftrvxmtrx/tga"
	_ "github.com/gen2brain/avif"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// PixelFormat is the memory layout of a DecodedPage
type PixelFormat int

const (
	PixelRGB  PixelFormat = iota // 3 bytes per pixel, alpha dropped
	PixelRGBA                    // 4 bytes per pixel, non-premultiplied
)

func (f PixelFormat) bytesPerPixel() int {
	if f == PixelRGBA {
		return 4
	}
	return 3
}

// DecodedPage is a display-ready bitmap for one page id. It satisfies
// image.Image so the renderer can upload it directly.
type DecodedPage struct {
	ID     string
	Width  int
	Height int
	Format PixelFormat
	Pix    []uint8
}

func (p *DecodedPage) Stride() int {
	return p.Width * p.Format.bytesPerPixel()
}

func (p *DecodedPage) ColorModel() color.Model {
	if p.Format == PixelRGBA {
		return color.NRGBAModel
	}
	return color.RGBAModel
}

func (p *DecodedPage) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.Width, p.Height)
}

func (p *DecodedPage) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return color.NRGBA{}
	}
	i := y*p.Stride() + x*p.Format.bytesPerPixel()
	if p.Format == PixelRGBA {
		return color.NRGBA{R: p.Pix[i], G: p.Pix[i+1], B: p.Pix[i+2], A: p.Pix[i+3]}
	}
	return color.RGBA{R: p.Pix[i], G: p.Pix[i+1], B: p.Pix[i+2], A: 0xff}
}

// pageLoader produces the decoded page for id. It is swapped out in tests.
type pageLoader func(src *Source, id string, opts decodeOptions) (*DecodedPage, error)

// loadDecodedPage reads, decodes and scales one page. Any failure comes
// back as a *ReadError; callers treat it as an empty slot.
func loadDecodedPage(src *Source, id string, opts decodeOptions) (*DecodedPage, error) {
	var img image.Image
	if src.Kind == SourcePdf {
		rendered, err := renderPdfPage(src.Path, id, opts.ViewportHeight)
		if err != nil {
			return nil, &ReadError{Path: src.Path, Page: id, Err: err}
		}
		img = rendered
	} else {
		data, err := readPageBytes(src, id)
		if err != nil {
			return nil, &ReadError{Path: src.Path, Page: id, Err: err}
		}
		img, err = decodeImage(data)
		if err != nil {
			return nil, &ReadError{Path: src.Path, Page: id, Err: err}
		}
	}

	page, err := toDecodedPage(id, img, opts)
	if err != nil {
		return nil, &ReadError{Path: src.Path, Page: id, Err: err}
	}
	return page, nil
}

// decodeImage sniffs the format of data. Bytes no registered decoder
// recognizes are retried as TGA, which has no magic number.
func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err == nil {
		return img, nil
	}
	if !errors.Is(err, image.ErrFormat) {
		return nil, fmt.Errorf("decoding: %w", err)
	}

	img, err = tga.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding as tga: %w", err)
	}
	return img, nil
}

// toDecodedPage scales img to the viewport height with the configured
// filter and packs it in the pixel format selected by the transparency mode
func toDecodedPage(id string, img image.Image, opts decodeOptions) (*DecodedPage, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("image %s has empty bounds", id)
	}

	var scaled *image.NRGBA
	if filter, ok := opts.Resize.Filter(); ok && opts.ViewportHeight >= 1 {
		targetH := int(opts.ViewportHeight)
		if targetH != b.Dy() {
			targetW := int(float64(targetH) * float64(b.Dx()) / float64(b.Dy()))
			if targetW < 1 {
				targetW = 1
			}
			scaled = imaging.Resize(img, targetW, targetH, filter)
		}
	}
	if scaled == nil {
		scaled = imaging.Clone(img)
	}

	w, h := scaled.Rect.Dx(), scaled.Rect.Dy()
	page := &DecodedPage{ID: id, Width: w, Height: h, Format: PixelRGB}
	if opts.Transparency {
		page.Format = PixelRGBA
	}

	bpp := page.Format.bytesPerPixel()
	page.Pix = make([]uint8, w*h*bpp)
	for y := 0; y < h; y++ {
		src := scaled.Pix[y*scaled.Stride : y*scaled.Stride+w*4]
		dst := page.Pix[y*w*bpp : (y+1)*w*bpp]
		if page.Format == PixelRGBA {
			copy(dst, src)
			continue
		}
		for x := 0; x < w; x++ {
			dst[x*3] = src[x*4]
			dst[x*3+1] = src[x*4+1]
			dst[x*3+2] = src[x*4+2]
		}
	}
	return page, nil
}
