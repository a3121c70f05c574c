package main

// RenderState provides read-only access to game state for the renderer
type RenderState interface {
	// CurrentPages returns the pages for the left and right halves
	CurrentPages() (left, right *DecodedPage)
	IsSingleView() bool
	HasSource() bool

	// UI state
	IsShowingInfo() bool
	GetPageIndicator() string
	GetStatus() StatusEvent
}

// InputActions provides action methods for the input handler
type InputActions interface {
	// Application control
	Exit()
	OpenFileDialog()

	// Navigation
	Navigate(action NavigateAction)

	// Display toggles
	ToggleFullscreen()
	ToggleInfo()

	// Settings
	ToggleShift()
	CycleMode()
	CycleResize()
	ToggleTransparency()
	ToggleCaching()
}
