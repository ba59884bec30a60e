// Package viz is the terminal front end for the hailstone renderer.
//
// [Canvas] is a braille surface that implements render.Renderer, and [Model]
// is a Bubble Tea program that feeds key and mouse messages to a
// render.Controller and ticks it on a timer.
//
// # Key Bindings
//
//	Drag  - Move the origin (quick preview)
//	←/→   - Shrink/grow the even turn angle
//	↑/↓   - Grow/shrink the odd turn angle
//	Enter - Log the current angles
//	R     - Redraw as blobs
//	A     - Animate the angles
//	D     - Back to line drawing
//	Esc/Q - Quit
package viz
