package main

// navigationActions maps action names onto viewer navigation
var navigationActions = map[string]NavigateAction{
	"next_page":   NavNext,
	"prev_page":   NavPrev,
	"first_page":  NavFirst,
	"last_page":   NavLast,
	"next_file":   NavNextSource,
	"prev_file":   NavPrevSource,
	"next_folder": NavNextFolder,
	"prev_folder": NavPrevFolder,
}

// ActionExecutor provides centralized action execution logic shared by
// KeybindingManager and MousebindingManager
type ActionExecutor struct{}

// NewActionExecutor creates a new ActionExecutor instance
func NewActionExecutor() *ActionExecutor {
	return &ActionExecutor{}
}

// ExecuteAction executes the given action using the InputActions interface.
// It returns false for unknown actions.
func (ae *ActionExecutor) ExecuteAction(action string, inputActions InputActions) bool {
	if nav, ok := navigationActions[action]; ok {
		inputActions.Navigate(nav)
		return true
	}

	switch action {
	case "exit":
		inputActions.Exit()
	case "open_file":
		inputActions.OpenFileDialog()
	case "fullscreen":
		inputActions.ToggleFullscreen()
	case "toggle_info":
		inputActions.ToggleInfo()
	case "toggle_shift":
		inputActions.ToggleShift()
	case "cycle_mode":
		inputActions.CycleMode()
	case "cycle_resize":
		inputActions.CycleResize()
	case "toggle_transparency":
		inputActions.ToggleTransparency()
	case "toggle_caching":
		inputActions.ToggleCaching()
	default:
		return false
	}

	return true
}

// globalActionExecutor is the global instance of ActionExecutor used throughout the application
var globalActionExecutor = NewActionExecutor()
