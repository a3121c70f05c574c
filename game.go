package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Game is the ebiten front end around a Viewer
type Game struct {
	viewer       *Viewer
	config       Config
	configPath   string
	inputHandler *InputHandler
	renderer     *Renderer
	dialog       *DialogRequester

	fullscreen bool
	savedWinW  int
	savedWinH  int
	showInfo   bool
	status     StatusEvent
	viewportH  int
	quit       bool
}

// NewGame wires a Viewer to ebiten input and rendering. Settings changes
// are saved to configPath; an empty path disables saving.
func NewGame(config Config, configPath string, viewer *Viewer, picker FilePicker) *Game {
	g := &Game{
		viewer:     viewer,
		config:     config,
		configPath: configPath,
		dialog:     NewDialogRequester(picker),
		showInfo:   true,
	}
	g.renderer = NewRenderer(g)
	g.inputHandler = NewInputHandler(g,
		NewKeybindingManager(config.Keybindings),
		NewMousebindingManager(config.Mousebindings, config.MouseSettings))
	return g
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	if g.viewportH > 0 && float32(g.viewportH) != g.viewer.Settings().ViewportHeight {
		g.viewer.SetViewportHeight(float32(g.viewportH))
	}

	// The dialog is modal; ignore input while it is up
	if !g.dialog.InFlight() {
		g.inputHandler.HandleInput()
	}
	if path, ok := g.dialog.Poll(); ok {
		if err := g.viewer.Open(path); err != nil {
			debugLog("Open from dialog failed: %v", err)
		}
	}

	g.viewer.Update()
	for {
		ev, ok := g.viewer.PopStatus()
		if !ok {
			break
		}
		g.status = ev
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.viewportH = outsideHeight
	return outsideWidth, outsideHeight
}

// Config returns the config with the current settings and window size
func (g *Game) Config() Config {
	cfg := g.config
	cfg.ApplySettings(g.viewer.Settings())
	if g.fullscreen {
		cfg.WindowWidth, cfg.WindowHeight = g.savedWinW, g.savedWinH
	} else {
		cfg.WindowWidth, cfg.WindowHeight = ebiten.WindowSize()
	}
	return cfg
}

// saveConfig persists the current settings
func (g *Game) saveConfig() {
	if g.configPath == "" {
		return
	}
	if err := saveConfigToPath(g.Config(), g.configPath); err != nil {
		logger.Warnf("Failed to save config: %v", err)
	}
}

func (g *Game) showOverlay(message string) {
	g.status = StatusEvent{Message: message, Time: g.viewer.now(), Duration: statusDuration}
}

// InputActions

func (g *Game) Exit() {
	g.quit = true
}

func (g *Game) OpenFileDialog() {
	if err := g.dialog.Request(); err != nil {
		debugLog("File dialog not opened: %v", err)
	}
}

func (g *Game) Navigate(action NavigateAction) {
	if err := g.viewer.Navigate(action); err != nil {
		debugLog("Navigate %d: %v", action, err)
	}
}

func (g *Game) ToggleFullscreen() {
	if !g.fullscreen {
		g.savedWinW, g.savedWinH = ebiten.WindowSize()
		ebiten.SetFullscreen(true)
	} else {
		ebiten.SetFullscreen(false)
		if g.savedWinW > 0 && g.savedWinH > 0 {
			ebiten.SetWindowSize(g.savedWinW, g.savedWinH)
		}
	}
	g.fullscreen = !g.fullscreen
}

func (g *Game) ToggleInfo() {
	g.showInfo = !g.showInfo
}

func (g *Game) ToggleShift() {
	g.viewer.ToggleShifted()
}

func (g *Game) CycleMode() {
	next := (g.viewer.Settings().Mode + 1) % ViewMode(len(viewModeNames))
	g.viewer.SetPaginationMode(next)
	g.saveConfig()
}

func (g *Game) CycleResize() {
	next := (g.viewer.Settings().Resize + 1) % ResizeQuality(len(resizeQualityNames))
	g.viewer.SetResizeQuality(next)
	g.showOverlay("Resize: " + next.String())
	g.saveConfig()
}

func (g *Game) ToggleTransparency() {
	enabled := !g.viewer.Settings().Transparency
	g.viewer.SetTransparency(enabled)
	g.showOverlay(fmt.Sprintf("Transparency: %s", onOff(enabled)))
	g.saveConfig()
}

func (g *Game) ToggleCaching() {
	enabled := !g.viewer.Settings().CacheEnabled
	g.viewer.SetCaching(enabled)
	g.showOverlay(fmt.Sprintf("Caching: %s", onOff(enabled)))
	g.saveConfig()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// RenderState

func (g *Game) CurrentPages() (left, right *DecodedPage) {
	return g.viewer.CurrentPages()
}

func (g *Game) IsSingleView() bool {
	return g.viewer.IsSingleView()
}

func (g *Game) HasSource() bool {
	return g.viewer.Source() != nil
}

func (g *Game) IsShowingInfo() bool {
	return g.showInfo
}

func (g *Game) GetPageIndicator() string {
	return pageIndicator(g.viewer)
}

func (g *Game) GetStatus() StatusEvent {
	return g.status
}

// pageIndicator formats the position as "3 / 10" or "3-4 / 10"
func pageIndicator(v *Viewer) string {
	total := v.PageCount()
	current := v.DisplayIndex()
	if total == 0 {
		return "0 / 0"
	}
	if v.IsSingleView() {
		return fmt.Sprintf("%d / %d", current, total)
	}
	return fmt.Sprintf("%d-%d / %d", current, current+1, total)
}
