// Package viz draws a finished descent in the terminal.
//
// The package implements an animation player using the Bubble Tea framework:
//
//   - [Player]: replays the trajectory over a wireframe of the surface
//   - [Canvas]: Braille-based pixel canvas for the wireframe
//   - [Heatmap]: top-down view of the surface in coloured cells
//   - [Colormap]: viridis and friends, shared with the image exporters
//
// # Key Bindings
//
//	Space - Play/Pause
//	←/→   - Step one frame back/forward
//	R     - Restart from frame 0
//	O     - Toggle camera orbit
//	+/-   - Zoom
//	V     - Toggle surface/top-down view
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
