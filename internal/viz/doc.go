// Package viz renders playback sessions in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Player]: drives one playback controller and draws its published state
//   - [App]: menu for picking an algorithm and a preset before playing
//   - [Canvas]: braille canvas for arrays too wide for one bar per column
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume (restarts a finished run)
//	[ ]   - Step backward/forward through the history
//	+ -   - Faster/slower
//	R     - Restart with a fresh input
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz
