// Package physics implements the spring mesh behind the liquid surface.
//
// A [Mesh] is a row of [dynamo.Node] oscillators. Every tick each node is
// pulled toward the ambient [Wave] target with a damped spring and advanced
// with semi-implicit Euler, then a few coupling passes let displacement leak
// into neighbours so a local splash becomes a travelling ripple.
//
// [Mesh] also implements [dynamo.Configurable] so parameters can be tuned
// while a simulation runs:
//
//	m := physics.NewMesh(50, physics.DefaultParams())
//	_ = m.SetParam("tension", 0.025)
//	m.Tick(phase)
package physics
