package main

import (
	"bytes"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// Global font source for overlay text
var globalFontSource *text.GoTextFaceSource

// InitGraphics initializes the global font source for text rendering
func InitGraphics() error {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return err
	}
	globalFontSource = s
	return nil
}

// DrawText draws text with specified position and color
func DrawText(screen *ebiten.Image, textString string, font *text.GoTextFace, x, y float64, textColor color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, textString, font, op)
}

// DrawFilledRect draws filled rectangles with float64 coordinates
func DrawFilledRect(screen *ebiten.Image, x, y, w, h float64, bgColor color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bgColor, false)
}

// pageToNRGBA expands a decoded page into an NRGBA image. RGBA pages share
// their pixel buffer; RGB pages get an opaque alpha channel.
func pageToNRGBA(page *DecodedPage) *image.NRGBA {
	rect := image.Rect(0, 0, page.Width, page.Height)
	if page.Format == PixelRGBA {
		return &image.NRGBA{Pix: page.Pix, Stride: page.Stride(), Rect: rect}
	}

	img := image.NewNRGBA(rect)
	for i, j := 0, 0; i+2 < len(page.Pix); i, j = i+3, j+4 {
		img.Pix[j] = page.Pix[i]
		img.Pix[j+1] = page.Pix[i+1]
		img.Pix[j+2] = page.Pix[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// newPageTexture uploads a decoded page to the GPU
func newPageTexture(page *DecodedPage) *ebiten.Image {
	return ebiten.NewImageFromImage(pageToNRGBA(page))
}

// newPlaceholderImage creates the image drawn in place of a page that
// could not be decoded
func newPlaceholderImage(width, height int) *ebiten.Image {
	if width <= 0 || height <= 0 {
		width, height = 400, 300
	}

	img := ebiten.NewImage(width, height)
	img.Fill(color.RGBA{40, 40, 40, 255})

	border := color.RGBA{120, 30, 30, 255}
	DrawFilledRect(img, 0, 0, float64(width), 3, border)
	DrawFilledRect(img, 0, float64(height-3), float64(width), 3, border)
	DrawFilledRect(img, 0, 0, 3, float64(height), border)
	DrawFilledRect(img, float64(width-3), 0, 3, float64(height), border)

	if globalFontSource != nil {
		face := &text.GoTextFace{Source: globalFontSource, Size: 20}
		DrawText(img, "Page could not be loaded", face, 12, 12, colorWhite)
	}
	return img
}
