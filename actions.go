package main

import (
	"fmt"
	"strings"
)

// ActionDefinition defines an action with its default keybindings, mouse bindings, and description
type ActionDefinition struct {
	Name         string
	Keys         []string
	MouseActions []string
	Description  string
}

// actionDefinitions contains all action definitions with default bindings.
// Pages advance to the left by default since most manga read right to left.
var actionDefinitions = []ActionDefinition{
	{"exit", []string{"Escape"}, []string{}, "Quit application"},
	{"open_file", []string{"KeyO"}, []string{}, "Open a file or archive"},
	{"next_page", []string{"ArrowLeft"}, []string{"WheelDown"}, "Next page (or spread)"},
	{"prev_page", []string{"ArrowRight"}, []string{"WheelUp"}, "Previous page (or spread)"},
	{"first_page", []string{"Home"}, []string{}, "Jump to first page"},
	{"last_page", []string{"End"}, []string{}, "Jump to last page"},
	{"next_file", []string{"ArrowDown"}, []string{}, "Open next archive in folder"},
	{"prev_file", []string{"ArrowUp"}, []string{}, "Open previous archive in folder"},
	{"next_folder", []string{"Ctrl+ArrowLeft"}, []string{}, "Open next folder"},
	{"prev_folder", []string{"Ctrl+ArrowRight"}, []string{}, "Open previous folder"},
	{"fullscreen", []string{"Ctrl+Enter"}, []string{"DoubleLeftClick"}, "Toggle fullscreen"},
	{"toggle_shift", []string{"Enter"}, []string{"MiddleClick"}, "Toggle cover mode (shift spreads by one page)"},
	{"cycle_mode", []string{"KeyM"}, []string{}, "Cycle single / right-to-left / left-to-right"},
	{"cycle_resize", []string{"KeyR"}, []string{}, "Cycle resize quality"},
	{"toggle_transparency", []string{"KeyT"}, []string{}, "Toggle transparency"},
	{"toggle_caching", []string{"KeyC"}, []string{}, "Toggle page caching"},
	{"toggle_info", []string{"KeyI"}, []string{}, "Show/hide page indicator"},
}

// GetActionDescriptions returns a map of action names to their descriptions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// actionHelp lists every action with its default bindings in definition order
func actionHelp() string {
	descriptions := GetActionDescriptions()

	var b strings.Builder
	b.WriteString("Default bindings:\n")
	for _, def := range actionDefinitions {
		bindings := append(append([]string(nil), def.Keys...), def.MouseActions...)
		fmt.Fprintf(&b, "  %-20s %-28s %s\n", def.Name, strings.Join(bindings, ", "), descriptions[def.Name])
	}
	return b.String()
}

// GetDefaultKeybindings returns a map of action names to their default keybindings
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keybindings[action.Name] = append([]string(nil), action.Keys...)
	}
	return keybindings
}

// GetDefaultMousebindings returns a map of action names to their default mouse bindings
func GetDefaultMousebindings() map[string][]string {
	mousebindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		mousebindings[action.Name] = append([]string(nil), action.MouseActions...)
	}
	return mousebindings
}
