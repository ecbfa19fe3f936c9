// Package viz renders the tank in a terminal with Bubble Tea.
//
// The liquid polygon is scan-filled onto a Braille [Canvas], giving 2x4 dots
// per character. [Model] owns the engine's tick loop and forwards keys to it
// through the engine inbox.
//
// # Key Bindings
//
//	←/→    - Tilt
//	↑/↓    - Fill level
//	Space  - Splash
//	P      - Pause/Resume
//	R      - Reset
//	T      - Cycle color themes
//	?      - Show help overlay
package viz
