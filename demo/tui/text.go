package tui

// UI Text Constants
const (
	TextFooterIdle    = "Press 'd' to discover topics | Press 'q' or Ctrl+C to quit"
	TextFooterRunning = "Press 'q' to detach (the run continues)"
	TextFooterDone    = "Press 'd' to run again | Press 'q' or Ctrl+C to exit"
)
