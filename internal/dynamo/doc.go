// Package dynamo provides the shared primitives of the liquid-surface engine.
//
// The package defines the small value types and helpers every other
// package agrees on:
//
//   - [Node]: one oscillating sample of the surface
//   - [Clock]: monotonic phase driving the ambient wave
//   - [Message]: a queued input (tilt, impulse, fill) posted from any goroutine
//   - [Snapshot]: a read-only copy of engine state handed to observers
//   - [WrapAngle], [ShortestArc], [LerpAngle]: circular angle arithmetic
//
// # Example
//
//	var clk dynamo.Clock
//	clk.Advance(0.1)
//	angle := dynamo.LerpAngle(current, target, 0.05)
//
// # Thread Safety
//
// Nothing in this package is synchronised. Values are owned by the goroutine
// that ticks the engine; other goroutines communicate through a [Sink].
package dynamo
