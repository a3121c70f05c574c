package main

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyMapping maps key names used in the config file to Ebiten keys
var keyMapping = map[string]ebiten.Key{
	"KeyA": ebiten.KeyA, "KeyB": ebiten.KeyB, "KeyC": ebiten.KeyC, "KeyD": ebiten.KeyD,
	"KeyE": ebiten.KeyE, "KeyF": ebiten.KeyF, "KeyG": ebiten.KeyG, "KeyH": ebiten.KeyH,
	"KeyI": ebiten.KeyI, "KeyJ": ebiten.KeyJ, "KeyK": ebiten.KeyK, "KeyL": ebiten.KeyL,
	"KeyM": ebiten.KeyM, "KeyN": ebiten.KeyN, "KeyO": ebiten.KeyO, "KeyP": ebiten.KeyP,
	"KeyQ": ebiten.KeyQ, "KeyR": ebiten.KeyR, "KeyS": ebiten.KeyS, "KeyT": ebiten.KeyT,
	"KeyU": ebiten.KeyU, "KeyV": ebiten.KeyV, "KeyW": ebiten.KeyW, "KeyX": ebiten.KeyX,
	"KeyY": ebiten.KeyY, "KeyZ": ebiten.KeyZ,

	"Key0": ebiten.Key0, "Key1": ebiten.Key1, "Key2": ebiten.Key2, "Key3": ebiten.Key3,
	"Key4": ebiten.Key4, "Key5": ebiten.Key5, "Key6": ebiten.Key6, "Key7": ebiten.Key7,
	"Key8": ebiten.Key8, "Key9": ebiten.Key9,

	"Space":      ebiten.KeySpace,
	"Backspace":  ebiten.KeyBackspace,
	"Enter":      ebiten.KeyEnter,
	"Escape":     ebiten.KeyEscape,
	"Tab":        ebiten.KeyTab,
	"Home":       ebiten.KeyHome,
	"End":        ebiten.KeyEnd,
	"PageUp":     ebiten.KeyPageUp,
	"PageDown":   ebiten.KeyPageDown,
	"ArrowUp":    ebiten.KeyArrowUp,
	"ArrowDown":  ebiten.KeyArrowDown,
	"ArrowLeft":  ebiten.KeyArrowLeft,
	"ArrowRight": ebiten.KeyArrowRight,

	"Comma":  ebiten.KeyComma,
	"Period": ebiten.KeyPeriod,
	"Slash":  ebiten.KeySlash,
	"Minus":  ebiten.KeyMinus,
	"Equal":  ebiten.KeyEqual,

	"F1": ebiten.KeyF1, "F2": ebiten.KeyF2, "F3": ebiten.KeyF3, "F4": ebiten.KeyF4,
	"F5": ebiten.KeyF5, "F11": ebiten.KeyF11,
	"NumpadEnter": ebiten.KeyNumpadEnter,
}

// KeyCombination represents a key with optional modifiers
type KeyCombination struct {
	Key   ebiten.Key
	Shift bool
	Ctrl  bool
	Alt   bool
}

// modifierState is the set of modifiers held during a frame
type modifierState struct {
	Shift bool
	Ctrl  bool
	Alt   bool
}

func currentModifiers() modifierState {
	return modifierState{
		Shift: ebiten.IsKeyPressed(ebiten.KeyShift),
		Ctrl:  ebiten.IsKeyPressed(ebiten.KeyControl),
		Alt:   ebiten.IsKeyPressed(ebiten.KeyAlt),
	}
}

// matches requires the held modifiers to be exactly the combination's, so
// Ctrl+ArrowLeft never also fires ArrowLeft
func (c KeyCombination) matches(mods modifierState) bool {
	return c.Shift == mods.Shift && c.Ctrl == mods.Ctrl && c.Alt == mods.Alt
}

// parseKeyString parses a key string like "Ctrl+ArrowLeft" into a KeyCombination
func parseKeyString(keyStr string) (KeyCombination, error) {
	parts := strings.Split(keyStr, "+")
	keyName := parts[len(parts)-1]
	if keyName == "" {
		return KeyCombination{}, fmt.Errorf("empty key string")
	}

	key, exists := keyMapping[keyName]
	if !exists {
		return KeyCombination{}, fmt.Errorf("unknown key: %s", keyName)
	}
	combination := KeyCombination{Key: key}

	for _, modifier := range parts[:len(parts)-1] {
		switch strings.ToLower(modifier) {
		case "shift":
			combination.Shift = true
		case "ctrl":
			combination.Ctrl = true
		case "alt":
			combination.Alt = true
		default:
			return KeyCombination{}, fmt.Errorf("unknown modifier: %s", modifier)
		}
	}

	return combination, nil
}

// validateKeybindings checks key formats and rejects a key bound to two actions
func validateKeybindings(keybindings map[string][]string) error {
	keyToAction := make(map[KeyCombination]string)

	for action, keys := range keybindings {
		for _, keyStr := range keys {
			combination, err := parseKeyString(keyStr)
			if err != nil {
				return fmt.Errorf("invalid key '%s' for action '%s': %w", keyStr, action, err)
			}
			if existing, exists := keyToAction[combination]; exists && existing != action {
				return fmt.Errorf("key conflict: '%s' is bound to both '%s' and '%s'", keyStr, existing, action)
			}
			keyToAction[combination] = action
		}
	}

	return nil
}

// KeybindingManager handles dynamic keybinding processing
type KeybindingManager struct {
	keybindings  map[string][]string
	combinations map[string][]KeyCombination
}

// NewKeybindingManager creates a new KeybindingManager. Bindings that do
// not parse are logged and ignored.
func NewKeybindingManager(keybindings map[string][]string) *KeybindingManager {
	km := &KeybindingManager{}
	km.UpdateKeybindings(keybindings)
	return km
}

// UpdateKeybindings replaces the keybindings map
func (km *KeybindingManager) UpdateKeybindings(keybindings map[string][]string) {
	km.keybindings = keybindings
	km.combinations = make(map[string][]KeyCombination, len(keybindings))
	for action, keys := range keybindings {
		for _, keyStr := range keys {
			combination, err := parseKeyString(keyStr)
			if err != nil {
				logger.Warnf("Ignoring keybinding %q for %s: %v", keyStr, action, err)
				continue
			}
			km.combinations[action] = append(km.combinations[action], combination)
		}
	}
}

// CheckAction checks if any keybinding for the given action was just pressed
func (km *KeybindingManager) CheckAction(action string) bool {
	mods := currentModifiers()
	for _, combination := range km.combinations[action] {
		if inpututil.IsKeyJustPressed(combination.Key) && combination.matches(mods) {
			return true
		}
	}
	return false
}

// ExecuteAction executes the given action using the InputActions interface
func (km *KeybindingManager) ExecuteAction(action string, inputActions InputActions) bool {
	if !km.CheckAction(action) {
		return false
	}

	return globalActionExecutor.ExecuteAction(action, inputActions)
}

// GetKeybindings returns the current keybindings map (for display purposes)
func (km *KeybindingManager) GetKeybindings() map[string][]string {
	return km.keybindings
}
