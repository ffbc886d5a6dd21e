// Package viz is the live drag pad: a Bubble Tea program that turns
// terminal mouse events into pointer events, drives a controller from
// the frame queue, and draws the target on a braille canvas.
//
// # Key Bindings
//
//	Space/P - Pause or resume dragging
//	R       - Recenter the target
//	+/-     - Scale the multiplier
//	?       - Show help
//	Q       - Quit
package viz
