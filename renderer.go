package main

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Common colors used in rendering
var (
	colorWhite = color.RGBA{255, 255, 255, 255}

	// Background colors for semi-transparent overlays
	bgColorLight = color.RGBA{0, 0, 0, 128}
	bgColorDark  = color.RGBA{0, 0, 0, 200}
)

const overlayFontSize = 18.0

// Renderer handles all drawing operations
type Renderer struct {
	renderState RenderState
	textures    map[*DecodedPage]*ebiten.Image
	placeholder *ebiten.Image
}

// NewRenderer creates a new Renderer
func NewRenderer(renderState RenderState) *Renderer {
	return &Renderer{
		renderState: renderState,
		textures:    make(map[*DecodedPage]*ebiten.Image),
	}
}

// Draw renders the entire screen
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Clear()

	if !r.renderState.HasSource() {
		r.drawCenteredMessage(screen, "Press O to open a file, folder or archive")
		r.drawStatus(screen)
		return
	}

	left, right := r.renderState.CurrentPages()
	r.releaseTextures(left, right)

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if r.renderState.IsSingleView() {
		r.drawPageInRegion(screen, left, 0, 0, w, h, "center")
	} else {
		half := w / 2
		// The spread meets at the middle of the screen
		r.drawPageInRegion(screen, left, 0, 0, half, h, "right")
		r.drawPageInRegion(screen, right, half, 0, w-half, h, "left")
	}

	if r.renderState.IsShowingInfo() {
		r.drawInfoDisplay(screen)
	}
	r.drawStatus(screen)
}

// texture returns the GPU image for page, uploading it on first use
func (r *Renderer) texture(page *DecodedPage) *ebiten.Image {
	if page == nil {
		if r.placeholder == nil {
			r.placeholder = newPlaceholderImage(400, 300)
		}
		return r.placeholder
	}
	if img, ok := r.textures[page]; ok {
		return img
	}
	img := newPageTexture(page)
	r.textures[page] = img
	return img
}

// releaseTextures frees every texture not shown this frame
func (r *Renderer) releaseTextures(left, right *DecodedPage) {
	for page, img := range r.textures {
		if page != left && page != right {
			img.Deallocate()
			delete(r.textures, page)
		}
	}
}

func (r *Renderer) drawPageInRegion(screen *ebiten.Image, page *DecodedPage, x, y, maxW, maxH int, align string) {
	img := r.texture(page)

	iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	scale := math.Min(float64(maxW)/iw, float64(maxH)/ih)

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Scale(scale, scale)

	scaledW := iw * scale
	scaledH := ih * scale
	xPos := calculateHorizontalPosition(x, maxW, scaledW, align)
	yPos := float64(y) + float64(maxH)/2 - scaledH/2

	op.GeoM.Translate(xPos, yPos)
	screen.DrawImage(img, op)
}

func calculateHorizontalPosition(x, maxW int, scaledW float64, align string) float64 {
	switch align {
	case "left":
		return float64(x)
	case "right":
		return float64(x+maxW) - scaledW
	default: // "center"
		return float64(x) + float64(maxW)/2 - scaledW/2
	}
}

func (r *Renderer) face() *text.GoTextFace {
	return &text.GoTextFace{Source: globalFontSource, Size: overlayFontSize}
}

func (r *Renderer) drawInfoDisplay(screen *ebiten.Image) {
	if globalFontSource == nil {
		return
	}
	infoFont := r.face()
	infoText := r.renderState.GetPageIndicator()

	textWidth, textHeight := text.Measure(infoText, infoFont, 0)

	// Position at bottom right corner
	padding := 10.0
	textX := float64(screen.Bounds().Dx()) - textWidth - padding
	textY := float64(screen.Bounds().Dy()) - textHeight - padding

	bgPadding := 5.0
	DrawFilledRect(screen, textX-bgPadding, textY-bgPadding, textWidth+bgPadding*2, textHeight+bgPadding*2, bgColorLight)
	DrawText(screen, infoText, infoFont, textX, textY, colorWhite)
}

func (r *Renderer) drawStatus(screen *ebiten.Image) {
	status := r.renderState.GetStatus()
	if !status.Active(time.Now()) {
		return
	}
	r.drawCenteredMessage(screen, status.Message)
}

func (r *Renderer) drawCenteredMessage(screen *ebiten.Image, message string) {
	if globalFontSource == nil {
		return
	}
	messageFont := r.face()
	textWidth, textHeight := text.Measure(message, messageFont, 0)

	padding := 20.0
	boxWidth := textWidth + padding*2
	boxHeight := textHeight + padding*2
	boxX := (float64(screen.Bounds().Dx()) - boxWidth) / 2
	boxY := (float64(screen.Bounds().Dy()) - boxHeight) / 2

	DrawFilledRect(screen, boxX, boxY, boxWidth, boxHeight, bgColorDark)
	DrawText(screen, message, messageFont, boxX+padding, boxY+padding, colorWhite)
}
