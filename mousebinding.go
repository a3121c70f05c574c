package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MouseSettings contains mouse-specific configuration
type MouseSettings struct {
	EnableMouse     bool    `json:"enable_mouse"`
	WheelThreshold  float64 `json:"wheel_threshold"`
	WheelInverted   bool    `json:"wheel_inverted"`
	DoubleClickTime int     `json:"double_click_time"` // milliseconds
}

// GetDefaultMouseSettings returns the default mouse settings
func GetDefaultMouseSettings() MouseSettings {
	return MouseSettings{
		EnableMouse:     true,
		WheelThreshold:  0.5,
		WheelInverted:   false,
		DoubleClickTime: 300,
	}
}

// MouseCombination represents a mouse action with optional modifiers
type MouseCombination struct {
	Button        ebiten.MouseButton
	IsWheel       bool
	WheelDir      int // +1 up, -1 down
	IsDoubleClick bool
	Shift         bool
	Ctrl          bool
	Alt           bool
}

func (c MouseCombination) matches(mods modifierState) bool {
	return c.Shift == mods.Shift && c.Ctrl == mods.Ctrl && c.Alt == mods.Alt
}

var mouseMapping = map[string]ebiten.MouseButton{
	"LeftClick":   ebiten.MouseButtonLeft,
	"RightClick":  ebiten.MouseButtonRight,
	"MiddleClick": ebiten.MouseButtonMiddle,
	"Back":        ebiten.MouseButton3,
	"Forward":     ebiten.MouseButton4,
}

// parseMouseString parses a mouse string like "Shift+LeftClick" or "WheelUp"
func parseMouseString(mouseStr string) (MouseCombination, error) {
	parts := strings.Split(mouseStr, "+")
	actionName := parts[len(parts)-1]

	var combination MouseCombination
	switch {
	case actionName == "WheelUp":
		combination.IsWheel = true
		combination.WheelDir = 1
	case actionName == "WheelDown":
		combination.IsWheel = true
		combination.WheelDir = -1
	case strings.HasPrefix(actionName, "Double"):
		button, exists := mouseMapping[strings.TrimPrefix(actionName, "Double")]
		if !exists {
			return MouseCombination{}, fmt.Errorf("unknown mouse action: %s", actionName)
		}
		combination.IsDoubleClick = true
		combination.Button = button
	default:
		button, exists := mouseMapping[actionName]
		if !exists {
			return MouseCombination{}, fmt.Errorf("unknown mouse action: %s", actionName)
		}
		combination.Button = button
	}

	for _, modifier := range parts[:len(parts)-1] {
		switch strings.ToLower(modifier) {
		case "shift":
			combination.Shift = true
		case "ctrl":
			combination.Ctrl = true
		case "alt":
			combination.Alt = true
		default:
			return MouseCombination{}, fmt.Errorf("unknown modifier: %s", modifier)
		}
	}

	return combination, nil
}

// wheelLatch turns a continuous wheel stream into discrete steps: one step
// per gesture, re-armed once the wheel comes to rest
type wheelLatch struct {
	threshold float64
	locked    bool
}

// step consumes one frame of wheel delta and returns +1 (up), -1 (down)
// or 0
func (l *wheelLatch) step(dx, dy float64) int {
	moving := math.Abs(dy) > l.threshold || math.Abs(dx) > l.threshold
	if !moving {
		l.locked = false
		return 0
	}
	if l.locked {
		return 0
	}
	l.locked = true
	if dy < -l.threshold || dx < -l.threshold {
		return -1
	}
	return 1
}

// doubleClickTracker tracks double-click state
type doubleClickTracker struct {
	lastClickTime   time.Time
	lastClickButton ebiten.MouseButton
	clickCount      int
}

func (t *doubleClickTracker) click(button ebiten.MouseButton, now time.Time, window time.Duration) bool {
	if t.clickCount > 0 && t.lastClickButton == button && now.Sub(t.lastClickTime) <= window {
		t.clickCount = 0
		t.lastClickTime = now
		return true
	}
	t.clickCount = 1
	t.lastClickButton = button
	t.lastClickTime = now
	return false
}

// MousebindingManager handles dynamic mouse binding processing
type MousebindingManager struct {
	mousebindings map[string][]string
	combinations  map[string][]MouseCombination
	settings      MouseSettings
	latch         wheelLatch
	doubleClick   doubleClickTracker

	// per-frame input, sampled once by BeginFrame
	mods       modifierState
	wheelStep  int
	doubleHits map[ebiten.MouseButton]bool
}

// NewMousebindingManager creates a new MousebindingManager
func NewMousebindingManager(mousebindings map[string][]string, settings MouseSettings) *MousebindingManager {
	mm := &MousebindingManager{
		mousebindings: mousebindings,
		combinations:  make(map[string][]MouseCombination),
		settings:      settings,
		latch:         wheelLatch{threshold: settings.WheelThreshold},
	}
	for action, mouseStrs := range mousebindings {
		for _, mouseStr := range mouseStrs {
			combination, err := parseMouseString(mouseStr)
			if err != nil {
				logger.Warnf("Ignoring mouse binding %q for %s: %v", mouseStr, action, err)
				continue
			}
			mm.combinations[action] = append(mm.combinations[action], combination)
		}
	}
	return mm
}

// BeginFrame samples wheel and click state. It must run once per frame
// before any CheckAction call so the latch sees every frame.
func (mm *MousebindingManager) BeginFrame() {
	mm.mods = currentModifiers()

	dx, dy := ebiten.Wheel()
	if mm.settings.WheelInverted {
		dx, dy = -dx, -dy
	}
	mm.wheelStep = mm.latch.step(dx, dy)

	mm.doubleHits = nil
	window := time.Duration(mm.settings.DoubleClickTime) * time.Millisecond
	for _, button := range mouseMapping {
		if inpututil.IsMouseButtonJustPressed(button) && mm.doubleClick.click(button, time.Now(), window) {
			if mm.doubleHits == nil {
				mm.doubleHits = make(map[ebiten.MouseButton]bool)
			}
			mm.doubleHits[button] = true
		}
	}
}

func (mm *MousebindingManager) triggered(combination MouseCombination) bool {
	if !combination.matches(mm.mods) {
		return false
	}
	switch {
	case combination.IsWheel:
		return mm.wheelStep != 0 && mm.wheelStep == combination.WheelDir
	case combination.IsDoubleClick:
		return mm.doubleHits[combination.Button]
	default:
		return inpututil.IsMouseButtonJustPressed(combination.Button)
	}
}

// CheckAction checks if any mouse binding for the given action is triggered
func (mm *MousebindingManager) CheckAction(action string) bool {
	if !mm.settings.EnableMouse {
		return false
	}
	for _, combination := range mm.combinations[action] {
		if mm.triggered(combination) {
			return true
		}
	}
	return false
}

// ExecuteAction executes the given action using the InputActions interface
func (mm *MousebindingManager) ExecuteAction(action string, inputActions InputActions) bool {
	if !mm.CheckAction(action) {
		return false
	}

	return globalActionExecutor.ExecuteAction(action, inputActions)
}

// GetMousebindings returns the current mouse bindings map (for display purposes)
func (mm *MousebindingManager) GetMousebindings() map[string][]string {
	return mm.mousebindings
}
